package registry

import (
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matforge/propkit/internal/edn"
	"github.com/matforge/propkit/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// cacheFile is the database file name inside the cache directory.
const cacheFile = "definitions.db"

// loadCached loads the definition set through the SQLite cache kept
// under cacheDir. A fingerprint of the definitions directory decides
// whether the cached rows are still current; on mismatch the cache is
// rebuilt from the directory.
func (r *Registry) loadCached(cacheDir string) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", filepath.Join(cacheDir, cacheFile))
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}

	fp, err := fingerprint(r.dir)
	if err != nil {
		return err
	}

	var cached string
	err = db.QueryRow(`SELECT fingerprint FROM cache_meta WHERE id = 1`).Scan(&cached)
	if err == nil && cached == fp {
		defs, err := readCache(db)
		if err == nil {
			r.index(defs)
			return nil
		}
		// Unreadable rows fall through to a rebuild.
	} else if err != nil && err != sql.ErrNoRows {
		return err
	}

	defs, err := loadDir(r.dir)
	if err != nil {
		return err
	}
	if err := writeCache(db, defs, fp); err != nil {
		return fmt.Errorf("rebuild cache: %w", err)
	}
	r.index(defs)
	return nil
}

// fingerprint hashes the names, sizes, and modification times of the
// definition files under dir.
func fingerprint(dir string) (string, error) {
	var entries []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".edn") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		entries = append(entries, fmt.Sprintf("%s|%d|%d", rel, info.Size(), info.ModTime().UnixNano()))
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(entries)
	h := sha256.New()
	for _, e := range entries {
		fmt.Fprintln(h, e)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// readCache loads every cached definition body.
func readCache(db *sql.DB) ([]*types.Definition, error) {
	rows, err := db.Query(`SELECT body FROM definitions ORDER BY property_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []*types.Definition
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		doc, err := edn.DecodeString(body)
		if err != nil {
			return nil, err
		}
		def, err := edn.ParseDefinition(doc)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// writeCache replaces the cached rows with defs and stamps the meta
// row with a fresh build id.
func writeCache(db *sql.DB, defs []*types.Definition, fp string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM definitions`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO definitions (property_id, short_name, date, body)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, def := range defs {
		body := edn.Encode(edn.EncodeDefinition(def))
		if _, err := stmt.Exec(def.PropertyID, def.ShortName(), def.Date(), body); err != nil {
			return err
		}
	}

	buildID := generateBuildID()
	_, err = tx.Exec(`INSERT INTO cache_meta (id, build_id, fingerprint, built_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			build_id = excluded.build_id,
			fingerprint = excluded.fingerprint,
			built_at = excluded.built_at`,
		buildID, fp, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	return tx.Commit()
}

// generateBuildID returns a UUID v7 to label one cache build.
func generateBuildID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
