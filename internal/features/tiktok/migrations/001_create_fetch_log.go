package migrations

import (
	"tiktok-carousel/internal/core"
)

// Migration001CreateFetchLog creates the scrape audit table
var Migration001CreateFetchLog = core.Migration{
	Version:     1,
	Name:        "create_tiktok_fetch_log",
	Description: "Create the TikTok profile fetch log",
	UpSQL: `
		CREATE TABLE IF NOT EXISTS tiktok_fetch_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			requested INTEGER NOT NULL,
			returned INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			fetched_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tiktok_fetch_log_username ON tiktok_fetch_log(username);
		CREATE INDEX IF NOT EXISTS idx_tiktok_fetch_log_fetched_at ON tiktok_fetch_log(fetched_at);
	`,
	DownSQL: `
		DROP INDEX IF EXISTS idx_tiktok_fetch_log_fetched_at;
		DROP INDEX IF EXISTS idx_tiktok_fetch_log_username;
		DROP TABLE IF EXISTS tiktok_fetch_log;
	`,
}
