package installer

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/RevengeRip/Fluorine-Manager/settings"
)

const (
	JOURNAL_FILENAME       = "fluorine.db"
	JOURNAL_INTERNAL_TABLE = "internal-metadata"
	JOURNAL_INSTALL_TABLE  = "installs"
)

// InstallRecord is one completed dependency install, keyed by prefix path.
type InstallRecord struct {
	PrefixPath  string
	ProtonName  string
	ProtonPath  string
	CompletedAt int64
}

// Journal persists completed installs, so a front-end can tell which
// prefixes were already set up and with what Proton build.
type Journal struct {
	db *bolt.DB
}

// OpenJournal opens the journal in the configured data directory.
func OpenJournal() (*Journal, error) {
	return OpenJournalAt(settings.ReadSettings().GetDataPath())
}

func OpenJournalAt(baseFolder string) (*Journal, error) {
	if err := os.MkdirAll(baseFolder, 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(baseFolder, JOURNAL_FILENAME), 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}

	// stamp the app version on first open
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(JOURNAL_INTERNAL_TABLE))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		if b.Get([]byte("app_version")) == nil {
			return b.Put([]byte("app_version"), []byte(settings.FLUORINE_VERSION))
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Close() {
	j.db.Close()
}

func (j *Journal) RecordInstall(record InstallRecord) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(JOURNAL_INSTALL_TABLE))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		var bytesBuff bytes.Buffer
		if err := gob.NewEncoder(&bytesBuff).Encode(record); err != nil {
			return err
		}
		return b.Put([]byte(record.PrefixPath), bytesBuff.Bytes())
	})
}

// GetInstall looks up the journal entry for a prefix, if any.
func (j *Journal) GetInstall(prefixPath string) (InstallRecord, bool, error) {
	var record InstallRecord
	found := false

	err := j.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(JOURNAL_INSTALL_TABLE))
		if b == nil {
			return nil
		}
		v := b.Get([]byte(prefixPath))
		if v == nil {
			return nil
		}
		if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&record); err != nil {
			return err
		}
		found = true
		return nil
	})
	return record, found, err
}

// ListInstalls returns every journal entry.
func (j *Journal) ListInstalls() ([]InstallRecord, error) {
	var records []InstallRecord

	err := j.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(JOURNAL_INSTALL_TABLE))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var record InstallRecord
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&record); err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	return records, err
}
