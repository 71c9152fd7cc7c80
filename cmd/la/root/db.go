package root

import (
	"context"
	"database/sql"

	"lifeadmin/internal/app"
	"lifeadmin/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*app.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return app.NewService(db, cfg.Account), cleanup, nil
}
