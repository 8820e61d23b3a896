package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Semior001/hnsearch/app/hn"
	"github.com/Semior001/hnsearch/app/search"
	"github.com/Semior001/hnsearch/app/store"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

// Search is a command to search once and print the result page.
type Search struct {
	HN HNGroup `group:"hn" namespace:"hn" env-namespace:"HN"`

	StorePath        string        `long:"store-path" env:"STORE_PATH" default:"." description:"parent dir for bolt files"`
	StoreLockTimeout time.Duration `long:"store-lock-timeout" env:"STORE_LOCK_TIMEOUT" default:"1s" description:"how long to wait for the bolt file lock"`
	Query            string        `long:"query" short:"q" description:"search term, the last used one if empty"`
	Page             int           `long:"page" default:"0" description:"page to fetch, starting from 0"`
	Sort             string        `long:"sort" default:"none" choice:"none" choice:"title" choice:"author" choice:"comments" choice:"points" description:"sort the page by"`
	Reverse          bool          `long:"reverse" description:"reverse the sort order"`
	Format           string        `long:"format" default:"table" choice:"table" choice:"yaml" description:"output format"`

	out io.Writer
}

const maxTitleWidth = 60

// Execute runs the command. Positional arguments are joined into the query.
func (s Search) Execute(args []string) error {
	lg := slog.Default()

	if s.Page < 0 || s.Page > hn.MaxPage {
		return fmt.Errorf("page must be in range [0, %d]", hn.MaxPage)
	}

	key, err := search.ParseSortKey(s.Sort)
	if err != nil {
		return fmt.Errorf("parse sort key: %w", err)
	}

	st, err := store.NewBolt(s.StorePath, s.StoreLockTimeout)
	if err != nil {
		return fmt.Errorf("make store: %w", err)
	}

	defer func() {
		if err := st.Close(); err != nil {
			lg.Error("close bolt store", slog.Any("err", err))
		}
	}()

	ctx := context.Background()
	term := search.NewTermStore(st, search.TermKey, search.DefaultTerm)

	ctrl, err := search.NewController(ctx, lg.With(slog.String("prefix", "search")),
		s.HN.client(lg.With(slog.String("prefix", "hn"))), term, s.HN.BaseURL)
	if err != nil {
		return fmt.Errorf("make search controller: %w", err)
	}

	query := s.Query
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}

	if query != "" {
		if err = ctrl.SetTerm(ctx, query); err != nil {
			return fmt.Errorf("save search term: %w", err)
		}
	}

	ctrl.Search(ctx, term.Value(), s.Page)

	// selecting a key twice flips the direction, NONE starts selected
	if key != search.SortNone {
		ctrl.Sort(key)
	}
	if s.Reverse {
		ctrl.Sort(key)
	}

	v := ctrl.Snapshot()
	if v.Stories.IsError {
		return errors.New("failed to fetch stories")
	}

	out := s.out
	if out == nil {
		out = os.Stdout
	}

	if s.Format == "yaml" {
		return writeYAML(out, v)
	}

	return writeTable(out, v)
}

type yamlPage struct {
	Term     string      `yaml:"term"`
	Page     int         `yaml:"page"`
	Comments int         `yaml:"comments"`
	Stories  []yamlStory `yaml:"stories"`
}

type yamlStory struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	URL      string `yaml:"url,omitempty"`
	Comments int    `yaml:"comments"`
	Points   int    `yaml:"points"`
}

func writeYAML(w io.Writer, v search.View) error {
	page := yamlPage{
		Term:     v.SearchTerm,
		Page:     v.Stories.Page,
		Comments: v.SumComments,
		Stories: lo.Map(v.Sorted, func(s hn.Story, _ int) yamlStory {
			return yamlStory{
				ID:       s.ObjectID,
				Title:    s.Title,
				Author:   s.Author,
				URL:      s.URL,
				Comments: s.NumComments,
				Points:   s.Points,
			}
		}),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(page); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	return enc.Close()
}

func writeTable(w io.Writer, v search.View) error {
	header := fmt.Sprintf("Search: %s, page %d, %d comments on this page",
		v.SearchTerm, v.Stories.Page+1, v.SumComments)

	if len(v.Sorted) == 0 {
		_, err := fmt.Fprintf(w, "%s\n\nNothing found.\n", header)
		return err
	}

	rows := [][]string{{"#", "Title", "Author", "Comments", "Points"}}
	for i, s := range v.Sorted {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			runewidth.Truncate(s.Title, maxTitleWidth, "…"),
			s.Author,
			strconv.Itoa(s.NumComments),
			strconv.Itoa(s.Points),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i == len(row)-1 {
				sb.WriteString(cell)
				continue
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
