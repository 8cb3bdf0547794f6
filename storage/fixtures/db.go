package fixturedb

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/qemer/lms/core"
	"github.com/qemer/lms/core/announcement"
	"github.com/qemer/lms/core/course"
	"github.com/qemer/lms/core/user"
)

//go:embed data/*.json
var defaultData embed.FS

// DB holds the fixture dataset. It is loaded once by Open and never written
// afterwards; repositories hand out copies so callers may reorder and slice
// freely.
type DB struct {
	conf *core.Config

	courses       []course.Course
	categories    []course.Category
	assignments   []course.Assignment
	progress      []course.Progress
	activity      []course.ActivityItem
	users         []user.User
	announcements []announcement.Announcement
}

// Open loads every fixture table, from conf.FixtureDir when set, the embedded
// defaults otherwise. Any unreadable or malformed file fails the whole load.
func Open(conf *core.Config) (*DB, error) {
	db := &DB{conf: conf}

	for _, t := range []struct {
		name string
		dest interface{}
	}{
		{"courses.json", &db.courses},
		{"categories.json", &db.categories},
		{"assignments.json", &db.assignments},
		{"progress.json", &db.progress},
		{"activity.json", &db.activity},
		{"users.json", &db.users},
		{"announcements.json", &db.announcements},
	} {
		if err := db.load(t.name, t.dest); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func (db *DB) load(name string, dest interface{}) error {
	var data []byte
	var err error
	if db.conf.FixtureDir != "" {
		data, err = os.ReadFile(filepath.Join(db.conf.FixtureDir, name))
	} else {
		data, err = defaultData.ReadFile("data/" + name)
	}
	if err != nil {
		return errors.Wrapf(err, "reading fixture %s", name)
	}
	return errors.Wrapf(json.Unmarshal(data, dest), "parsing fixture %s", name)
}
