// Viewer dumps the participants and messages collections of a running (or
// stopped) server in read-only mode, for debugging.
package main

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"batepapo-api/domain"
)

type config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" required:"true"`
	Collection     string `envconfig:"COLLECTION" default:"messages"`
}

func main() {
	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// BypassLockGuard allows opening while the server holds the lock.
	opts := badger.DefaultOptions(cfg.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	color.Cyan.Printf("Collection %q at %s\n", cfg.Collection, cfg.BadgerFilepath)

	table := tablewriter.NewWriter(os.Stdout)
	switch cfg.Collection {
	case "participants":
		table.SetHeader([]string{"Name", "LastStatus"})
	default:
		table.SetHeader([]string{"From", "To", "Type", "Time", "Text"})
	}
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(cfg.Collection + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				appendRow(table, cfg.Collection, val)
				rows++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	table.Render()
	color.Green.Printf("%d documents\n", rows)
}

func appendRow(table *tablewriter.Table, collection string, val []byte) {
	switch collection {
	case "participants":
		var p domain.Participant
		if err := json.Unmarshal(val, &p); err != nil {
			table.Append([]string{"<corrupt>", string(val)})
			return
		}
		table.Append([]string{p.Name, strconv.FormatInt(p.LastStatus, 10)})
	default:
		var m domain.Message
		if err := json.Unmarshal(val, &m); err != nil {
			table.Append([]string{"<corrupt>", "", "", "", strings.TrimSpace(string(val))})
			return
		}
		table.Append([]string{m.From, m.To, string(m.Type), m.Time, m.Text})
	}
}
