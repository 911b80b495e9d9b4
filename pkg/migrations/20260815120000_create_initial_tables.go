package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		statements := []string{
			`
			CREATE TABLE acts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				act_number INTEGER NOT NULL,
				title TEXT NOT NULL,
				description TEXT,
				duration_target TEXT,
				tone TEXT
			)
			`,
			`CREATE UNIQUE INDEX ux_acts_act_number ON acts(act_number)`,
			`
			CREATE TABLE story_elements (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				act_id INTEGER REFERENCES acts(id) ON DELETE SET NULL,
				element_type TEXT NOT NULL,
				title TEXT NOT NULL,
				description TEXT,
				quote TEXT,
				why_it_matters TEXT,
				sort_order INTEGER NOT NULL DEFAULT 0
			)
			`,
			`CREATE INDEX ix_story_elements_act_id ON story_elements(act_id)`,
			`
			CREATE TABLE videos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				filename TEXT NOT NULL,
				title TEXT NOT NULL,
				summary TEXT,
				duration_seconds REAL,
				characters TEXT,
				chapters TEXT,
				highlights TEXT,
				transcript_word_count INTEGER NOT NULL DEFAULT 0,
				processing_status TEXT NOT NULL DEFAULT 'pending'
			)
			`,
			`CREATE UNIQUE INDEX ux_videos_filename ON videos(filename)`,
			`
			CREATE TABLE clips (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				video_id INTEGER NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
				title TEXT,
				filename TEXT NOT NULL,
				storage_path TEXT,
				thumbnail_path TEXT,
				start_time TEXT,
				duration_seconds REAL,
				description TEXT,
				sort_order INTEGER NOT NULL DEFAULT 0
			)
			`,
			`CREATE UNIQUE INDEX ux_clips_video_filename ON clips(video_id, filename)`,
			`
			CREATE TABLE clip_story_links (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				clip_id INTEGER NOT NULL REFERENCES clips(id) ON DELETE CASCADE,
				story_element_id INTEGER NOT NULL REFERENCES story_elements(id) ON DELETE CASCADE,
				is_primary BOOLEAN NOT NULL DEFAULT FALSE,
				relevance_notes TEXT
			)
			`,
			`CREATE UNIQUE INDEX ux_clip_story_links_key ON clip_story_links(clip_id, story_element_id)`,
			`
			CREATE TABLE video_acts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				video_id INTEGER NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
				act_id INTEGER NOT NULL REFERENCES acts(id) ON DELETE CASCADE,
				priority INTEGER NOT NULL DEFAULT 1
			)
			`,
			`CREATE UNIQUE INDEX ux_video_acts_key ON video_acts(video_id, act_id)`,
		}

		for _, stmt := range statements {
			if _, err := db.Exec(stmt); err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"video_acts", "clip_story_links", "clips", "videos", "story_elements", "acts"} {
			if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
