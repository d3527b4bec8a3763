package repomanager

import (
	"context"
	"database/sql"

	"github.com/Tao1925/poc-web/internal/dbx"
	"github.com/Tao1925/poc-web/internal/server/repositories/answers"
	"github.com/Tao1925/poc-web/internal/server/repositories/chapters"
	"github.com/Tao1925/poc-web/internal/server/repositories/questions"
	"github.com/Tao1925/poc-web/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Chapters(db dbx.DBTX) chapters.Repository
	Questions(db dbx.DBTX) questions.Repository
	Answers(db dbx.DBTX) answers.Repository
}
