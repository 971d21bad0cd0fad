package metadata_service

import (
	"context"
	"errors"

	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS file_metadata (
	file_id        TEXT        NOT NULL,
	chunk_id       INT         NOT NULL,
	filename       TEXT        NOT NULL DEFAULT '',
	size           BIGINT      NOT NULL DEFAULT 0,
	worker_id      TEXT        NOT NULL DEFAULT '',
	worker_address TEXT        NOT NULL DEFAULT '',
	upload_time    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (file_id, chunk_id)
)`

// PostgresMetadataService persists the chunk-placement table in Postgres.
// Unassigned rows are stored with an empty worker_id, which the fill-in-place
// update guards on.
type PostgresMetadataService struct {
	pool *pgxpool.Pool
	ls   log_service.LogService
}

func NewPostgresMetadataService(ctx context.Context, databaseURL string, ls log_service.LogService) (*PostgresMetadataService, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	ms := &PostgresMetadataService{pool: pool, ls: ls}
	if err := ms.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	ls.Info(log_service.LogEvent{Message: "Connected to metadata database"})
	return ms, nil
}

func (ms *PostgresMetadataService) Close() {
	ms.pool.Close()
}

func (ms *PostgresMetadataService) ensureSchema(ctx context.Context) error {
	_, err := ms.pool.Exec(ctx, createTableSQL)
	return err
}

func (ms *PostgresMetadataService) CreateFileEntry(ctx context.Context, fileID string, filename string, size int64) error {
	tag, err := ms.pool.Exec(ctx,
		`INSERT INTO file_metadata (file_id, chunk_id, filename, size, upload_time)
		 VALUES ($1, 0, $2, $3, now())
		 ON CONFLICT (file_id, chunk_id) DO NOTHING`,
		fileID, filename, size)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFileEntryExists
	}
	return nil
}

func (ms *PostgresMetadataService) FindByFilename(ctx context.Context, filename string) (*ChunkPlacement, error) {
	row := ms.pool.QueryRow(ctx,
		`SELECT file_id, chunk_id, filename, size, worker_id, worker_address, upload_time
		 FROM file_metadata
		 WHERE filename = $1
		 ORDER BY file_id, chunk_id
		 LIMIT 1`,
		filename)

	p, err := scanPlacement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (ms *PostgresMetadataService) FindAllByFileID(ctx context.Context, fileID string) ([]ChunkPlacement, error) {
	rows, err := ms.pool.Query(ctx,
		`SELECT file_id, chunk_id, filename, size, worker_id, worker_address, upload_time
		 FROM file_metadata
		 WHERE file_id = $1`,
		fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var placements []ChunkPlacement
	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, err
		}
		placements = append(placements, *p)
	}
	return placements, rows.Err()
}

func (ms *PostgresMetadataService) FindByFileIDAndChunkID(ctx context.Context, fileID string, chunkID int) (*ChunkPlacement, error) {
	row := ms.pool.QueryRow(ctx,
		`SELECT file_id, chunk_id, filename, size, worker_id, worker_address, upload_time
		 FROM file_metadata
		 WHERE file_id = $1 AND chunk_id = $2`,
		fileID, chunkID)

	p, err := scanPlacement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlacementNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (ms *PostgresMetadataService) SavePlacement(ctx context.Context, placement ChunkPlacement) error {
	tag, err := ms.pool.Exec(ctx,
		`INSERT INTO file_metadata (file_id, chunk_id, filename, size, worker_id, worker_address, upload_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (file_id, chunk_id) DO UPDATE
		 SET worker_id = EXCLUDED.worker_id,
		     worker_address = EXCLUDED.worker_address,
		     upload_time = EXCLUDED.upload_time
		 WHERE file_metadata.worker_id = ''`,
		placement.FileID, placement.ChunkID, placement.Filename, placement.Size,
		placement.WorkerID, placement.WorkerAddress, placement.UploadTime)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrPlacementExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		// The guarded upsert matched a row that already carries a worker.
		return ErrPlacementExists
	}
	return nil
}

func scanPlacement(row pgx.Row) (*ChunkPlacement, error) {
	var p ChunkPlacement
	if err := row.Scan(&p.FileID, &p.ChunkID, &p.Filename, &p.Size, &p.WorkerID, &p.WorkerAddress, &p.UploadTime); err != nil {
		return nil, err
	}
	return &p, nil
}
