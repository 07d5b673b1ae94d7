package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"topic-archive/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

// Config lets the inspector open the same store as the server and the seed
// tool without repeating its path on the command line.
type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH"`
}

func main() {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatal("Config error: ", err)
	}

	dbPath := flag.String("db", config.BadgerFilepath, "Path to badger DB (defaults to BADGER_FILEPATH)")
	prefix := flag.String("prefix", repositories.StreamPrefix, "Prefix to scan (stream:, user:, msg:)")
	flag.Parse()
	if *dbPath == "" {
		log.Fatal("No badger DB: set BADGER_FILEPATH or pass -db")
	}

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "ID", "Detail"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				table.Append(describe(key, v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// describe never fails: undecodable records are shown as raw sizes.
func describe(key string, val []byte) []string {
	switch {
	case strings.HasPrefix(key, repositories.StreamPrefix):
		if s, err := repositories.UnmarshalStream(val); err == nil {
			return []string{key, "STREAM", fmt.Sprint(s.ID), fmt.Sprintf("%s (web-public: %t)", s.Name, s.IsWebPublic)}
		}
	case strings.HasPrefix(key, repositories.UserPrefix):
		if u, err := repositories.UnmarshalUser(val); err == nil {
			return []string{key, "USER", fmt.Sprint(u.ID), fmt.Sprintf("%s <%s>", u.FullName, u.Email)}
		}
	case strings.HasPrefix(key, repositories.MessagePrefix):
		if m, err := repositories.UnmarshalDiskMessage(val); err == nil {
			detail := fmt.Sprintf("[%s] %s: %s", m.Topic, m.PubDate.Format("2006-01-02 15:04:05"), m.Content)
			return []string{key, "MESSAGE", m.ID.String()[:8], detail}
		}
	}
	return []string{key, "RAW", "--------", fmt.Sprintf("Size: %d bytes", len(val))}
}
