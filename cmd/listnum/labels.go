package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/listnum/internal/labelstore"
	"github.com/jcorbin/listnum/internal/logging"
	"github.com/jcorbin/listnum/internal/textutil"
	"github.com/jcorbin/listnum/numbering"
)

// LabelsCmd lists label registries.
type LabelsCmd struct {
	DB    string   `name:"db" type:"path" help:"SQLite database to save registries into; with no files, lists its documents."`
	Files []string `arg:"" optional:"" help:"Documents to list; - reads stdin."`
}

// Run lists the registries of every file, saving them if a database is
// given.
func (c *LabelsCmd) Run(g *Globals) error {
	ctx := context.Background()
	if len(c.Files) == 0 && c.DB == "" {
		return errors.New("no documents given")
	}

	var st *labelstore.Store
	if c.DB != "" {
		var err error
		if st, err = labelstore.Open(ctx, c.DB); err != nil {
			return err
		}
		defer st.Close()
	}

	if len(c.Files) == 0 {
		docs, err := st.Documents(ctx)
		if err != nil {
			return err
		}
		ew := &textutil.ErrWriter{Writer: g.stdout}
		for _, doc := range docs {
			ew.Printf("%v %v labels=%v\n", fileStyle.Render(doc.Name), dimStyle.Render(doc.Revision), doc.Labels)
		}
		return ew.Err
	}

	for _, name := range c.Files {
		doc, err := g.load(name)
		if err != nil {
			return err
		}
		snap := labelstore.SnapshotOf(name, doc.res)
		if err := listSnapshot(g.stdout, snap, doc); err != nil {
			return err
		}
		if st != nil {
			if err := st.Save(ctx, snap); err != nil {
				return fmt.Errorf("saving %v: %w", name, err)
			}
			logging.Logger().Debug("saved labels",
				"document", name,
				"revision", snap.Revision,
				"examples", len(snap.Examples),
				"custom", len(snap.CustomLabels))
		}
	}
	return nil
}

func listSnapshot(out io.Writer, snap labelstore.Snapshot, doc document) error {
	ew := &textutil.ErrWriter{Writer: out}
	ew.Printf("# %v\n", fileStyle.Render(snap.Name))
	listEntries(ew, "example", snap.Examples, func(ent numbering.Entry) string {
		return fmt.Sprintf("(%v)", ent.Number)
	})
	listEntries(ew, "custom", snap.CustomLabels, func(ent numbering.Entry) string {
		return "(" + ent.Label + ")"
	})
	for _, ph := range snap.Placeholders {
		ew.Printf("placeholder %v = %v\n", ph.Name, ph.Number)
	}
	for _, def := range doc.res.Definitions {
		ew.Printf("definition %v:\n", def.Term)
		pw := textutil.PrefixWriter("  ", ew)
		for _, item := range def.Items {
			fmt.Fprintln(pw, textutil.Truncate(item, 60))
		}
		pw.Close()
	}
	return ew.Err
}

func listEntries(w io.Writer, kind string, entries []numbering.Entry, display func(numbering.Entry) string) {
	for _, ent := range entries {
		fmt.Fprintf(w, "%v %v %v line %v: %v", kind, displayStyle.Render(display(ent)), ent.Raw, ent.Line+1,
			textutil.Truncate(ent.Content, 60))
		if ent.Duplicate {
			io.WriteString(w, warnStyle.Render(" duplicate"))
		}
		io.WriteString(w, "\n")
	}
}
