package datasync

import (
	"context"
	"fmt"

	"github.com/Tao1925/poc-web/internal/common"
	"github.com/Tao1925/poc-web/internal/server/models"
)

// cascade deletes records together with everything that references them,
// children first, one statement per table and entity type.
type cascade struct {
	r   repos
	res *Result
}

func (c cascade) questions(ctx context.Context, qs []*models.Question) error {
	if len(qs) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}

	n, err := c.r.answers.DeleteByQuestionIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: delete answers of questions: %w", common.ErrPersistence, err)
	}
	c.res.AnswersDeleted += n

	n, err = c.r.questions.DeleteByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: delete questions: %w", common.ErrPersistence, err)
	}
	c.res.QuestionsDeleted += n
	return nil
}

// chapters also removes any question the chapters still own, together with
// its answers, before the chapter rows go.
func (c cascade) chapters(ctx context.Context, cs []*models.Chapter) error {
	if len(cs) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(cs))
	for _, ch := range cs {
		ids = append(ids, ch.ID)
	}

	n, err := c.r.answers.DeleteByChapterIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: delete answers of chapters: %w", common.ErrPersistence, err)
	}
	c.res.AnswersDeleted += n

	n, err = c.r.questions.DeleteByChapterIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: delete questions of chapters: %w", common.ErrPersistence, err)
	}
	c.res.QuestionsDeleted += n

	n, err = c.r.chapters.DeleteByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: delete chapters: %w", common.ErrPersistence, err)
	}
	c.res.ChaptersDeleted += n
	return nil
}

func (c cascade) users(ctx context.Context, us []*models.User) error {
	if len(us) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(us))
	for _, u := range us {
		ids = append(ids, u.ID)
	}

	n, err := c.r.answers.DeleteByUserIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: delete answers of users: %w", common.ErrPersistence, err)
	}
	c.res.AnswersDeleted += n

	n, err = c.r.users.DeleteByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: delete users: %w", common.ErrPersistence, err)
	}
	c.res.UsersDeleted += n
	return nil
}
