// Package animals provides the client-side persistence layer for herd records.
//
// The Repository interface is implemented by SQLiteRepository over a
// dbx.DBTX, so the same code runs against *sql.DB or inside a *sql.Tx (the
// backup restore path upserts a whole herd in one transaction).
//
// Timestamps are stored as Unix nanoseconds in UTC; the optional birth date
// is a nullable column. Listings are ordered newest first by creation time.
//
//	repo := animals.NewSQLiteRepository(db)
//	_ = repo.CreateOrUpdate(ctx, a)
//	all, _ := repo.GetAll(ctx)
//	one, _ := repo.GetByID(ctx, id)
//	_ = repo.DeleteByID(ctx, id)
package animals
