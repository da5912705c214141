package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/notes"
)

// SaveTemplate stores content as a reusable template.
func (c *Controller) SaveTemplate(ctx context.Context, name, content string) (core.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.defaultNoteName()
	}
	now := c.now()
	t := core.Template{
		ID:        core.TemplateID(now),
		Name:      name,
		Content:   content,
		CreatedAt: now,
	}
	if err := c.store.PutTemplate(ctx, t); err != nil {
		err = core.NewStorageError("put", core.TableTemplates, err)
		c.report(core.LevelError, "Could not save template", err)
		return core.Template{}, err
	}
	return t, nil
}

// Templates lists saved templates, oldest first.
func (c *Controller) Templates(ctx context.Context) ([]core.Template, error) {
	list, err := c.store.ListTemplates(ctx)
	if err != nil {
		return nil, core.NewStorageError("list", core.TableTemplates, err)
	}
	return list, nil
}

// DeleteTemplate removes a template.
func (c *Controller) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := c.template(ctx, id); err != nil {
		return err
	}
	if err := c.store.DeleteTemplate(ctx, id); err != nil {
		return core.NewStorageError("delete", core.TableTemplates, err)
	}
	return nil
}

// NewNoteFromTemplate creates a note carrying a template's name and content.
func (c *Controller) NewNoteFromTemplate(ctx context.Context, id string) (core.Note, error) {
	t, err := c.template(ctx, id)
	if err != nil {
		return core.Note{}, err
	}
	return c.repo.AddNote(&notes.Seed{Name: t.Name, Content: t.Content}), nil
}

func (c *Controller) template(ctx context.Context, id string) (core.Template, error) {
	t, found, err := c.store.GetTemplate(ctx, id)
	if err != nil {
		return core.Template{}, core.NewStorageError("get", core.TableTemplates, err)
	}
	if !found {
		return core.Template{}, fmt.Errorf("template %q: %w", id, core.ErrTemplateNotFound)
	}
	return t, nil
}
