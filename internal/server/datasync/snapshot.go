package datasync

import (
	"context"
	"fmt"

	"github.com/Tao1925/poc-web/internal/common"
	"github.com/Tao1925/poc-web/internal/dbx"
	"github.com/Tao1925/poc-web/internal/server/models"
	"github.com/Tao1925/poc-web/internal/server/repositories/answers"
	"github.com/Tao1925/poc-web/internal/server/repositories/chapters"
	"github.com/Tao1925/poc-web/internal/server/repositories/questions"
	"github.com/Tao1925/poc-web/internal/server/repositories/repomanager"
	"github.com/Tao1925/poc-web/internal/server/repositories/users"
)

// repos are the repositories of one transaction.
type repos struct {
	users     users.Repository
	chapters  chapters.Repository
	questions questions.Repository
	answers   answers.Repository
}

func bind(rm repomanager.RepositoryManager, db dbx.DBTX) repos {
	return repos{
		users:     rm.Users(db),
		chapters:  rm.Chapters(db),
		questions: rm.Questions(db),
		answers:   rm.Answers(db),
	}
}

// snapshot is the persisted state as it was when the run began.
type snapshot struct {
	users     []*models.User
	chapters  []*models.Chapter
	questions []*models.Question
}

func readSnapshot(ctx context.Context, r repos) (*snapshot, error) {
	us, err := r.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load users: %w", common.ErrPersistence, err)
	}
	cs, err := r.chapters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load chapters: %w", common.ErrPersistence, err)
	}
	qs, err := r.questions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load questions: %w", common.ErrPersistence, err)
	}
	return &snapshot{users: us, chapters: cs, questions: qs}, nil
}
