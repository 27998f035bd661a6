package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tripquote/internal/cloudsync"
	"github.com/dmitrijs2005/tripquote/internal/cryptox"
	"github.com/dmitrijs2005/tripquote/internal/models"
	"github.com/dmitrijs2005/tripquote/internal/proposal"
)

func (a *App) proposal() (proposal.Proposal, error) {
	e, err := a.requireEditor()
	if err != nil {
		return proposal.Proposal{}, err
	}
	return proposal.Build(e.Quote(), a.library.Snapshot(), a.config.Agency()), nil
}

func (a *App) cmdPreview(_ context.Context, _ []string) error {
	p, err := a.proposal()
	if err != nil {
		return err
	}
	return proposal.RenderText(a.out, p)
}

func (a *App) cmdPDF(ctx context.Context, args []string) error {
	p, err := a.proposal()
	if err != nil {
		return err
	}
	target := rest(args, 0)
	if target == "" {
		target = p.Reference + ".pdf"
	}

	var buf bytes.Buffer
	if err := proposal.RenderPDF(&buf, p); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return a.write(ctx, target, buf.Bytes())
}

func (a *App) cmdExport(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	var (
		data   []byte
		err    error
		target = rest(args, 1)
	)
	switch args[0] {
	case "library":
		data, err = a.library.ExportLibrary()
		if target == "" {
			target = "library.json"
		}
	case "templates":
		data, err = a.library.ExportTemplates()
		if target == "" {
			target = "templates.json"
		}
	case "backup":
		data, err = a.state.Backup(ctx)
		if target == "" {
			target = "tripquote-backup.json"
		}
	case "sealed":
		data, err = a.sealedBackup(ctx)
		if target == "" {
			target = "tripquote-backup.sealed.json"
		}
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	return a.write(ctx, target, data)
}

func (a *App) cmdImport(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	data, err := os.ReadFile(rest(args, 1))
	if err != nil {
		return err
	}

	switch args[0] {
	case "library":
		if err := a.library.ImportLibrary(ctx, data); err != nil {
			return err
		}
		a.printf("library imported\n")
	case "templates":
		n, err := a.library.ImportTemplates(ctx, data)
		if err != nil {
			return err
		}
		a.printf("imported %d templates\n", n)
	case "backup":
		if err := a.restore(ctx, data); err != nil {
			return err
		}
		a.printf("backup restored\n")
	case "sealed":
		if err := a.restoreSealed(ctx, data); err != nil {
			return err
		}
		a.printf("backup restored\n")
	default:
		return errUsage
	}
	return nil
}

// restore replaces the whole database with a backup document and reloads
// the existing stores in place, so the background syncer keeps merging into
// the live library. The open quote is closed.
func (a *App) restore(ctx context.Context, data []byte) error {
	var qs []models.Quote
	err := a.library.Reload(ctx, func(ctx context.Context) (models.Library, error) {
		if err := a.state.Restore(ctx, data); err != nil {
			return models.Library{}, err
		}
		restored, lib, err := a.readState(ctx)
		qs = restored
		return lib, err
	})
	if err != nil {
		return err
	}
	a.quotes.Reset(qs)
	a.editor, a.dirty = nil, false
	return nil
}

func (a *App) sealedBackup(ctx context.Context) ([]byte, error) {
	data, err := a.state.Backup(ctx)
	if err != nil {
		return nil, err
	}
	pass, err := GetPassphrase(a.reader, a.out, isTerminal())
	if err != nil {
		return nil, err
	}
	defer cryptox.Wipe(pass)
	return cryptox.Seal(data, pass)
}

func (a *App) restoreSealed(ctx context.Context, doc []byte) error {
	pass, err := GetPassphrase(a.reader, a.out, isTerminal())
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pass)

	data, err := cryptox.Open(doc, pass)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(data)
	return a.restore(ctx, data)
}

func (a *App) cmdSync(ctx context.Context, args []string) error {
	channels := cloudsync.Channels
	if len(args) > 0 {
		ch, err := cloudsync.ParseChannel(args[0])
		if err != nil {
			return err
		}
		channels = []cloudsync.Channel{ch}
	}

	var errs []error
	for _, ch := range channels {
		res, err := a.syncer.SyncNow(ctx, ch)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch, err))
			continue
		}
		if ch == cloudsync.Templates {
			a.printf("%s: synced from %s, %d new templates\n", ch, res.URL, res.Added)
		} else {
			a.printf("%s: synced from %s\n", ch, res.URL)
		}
	}
	return errors.Join(errs...)
}

func (a *App) cmdSetURL(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	ch, err := cloudsync.ParseChannel(args[0])
	if err != nil {
		return err
	}
	url := args[1]
	if url == "default" {
		url = ""
	}
	if err := a.syncer.SetURL(ctx, ch, url); err != nil {
		return err
	}
	cur, err := a.syncer.URL(ctx, ch)
	if err != nil {
		return err
	}
	a.printf("%s url: %s\n", ch, cur)
	return nil
}
