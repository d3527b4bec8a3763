package datasync

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tao1925/poc-web/internal/common"
	"github.com/Tao1925/poc-web/internal/server/models"
)

// Result holds informational counters of one run.
type Result struct {
	RunID            string
	UsersUpserted    int
	UsersDeleted     int64
	ChaptersDesired  int
	ChaptersDeleted  int64
	QuestionsDesired int
	QuestionsDeleted int64
	AnswersDeleted   int64
}

// reconcile makes the store match doc. It must run inside one transaction:
// it writes as it goes and relies on rollback for atomicity.
func reconcile(ctx context.Context, r repos, doc *Document, res *Result) error {
	snap, err := readSnapshot(ctx, r)
	if err != nil {
		return err
	}

	users := newLookup(UserIdentity, snap.users)
	if err := syncUsers(ctx, r, doc.Users, users, res); err != nil {
		return err
	}

	chapters := newLookup(ChapterIdentity, snap.chapters)
	questions := newLookup(QuestionIdentity, snap.questions)
	if err := syncChapters(ctx, r, doc.Chapters, chapters, questions, res); err != nil {
		return err
	}

	c := cascade{r: r, res: res}
	if err := c.questions(ctx, questions.orphans()); err != nil {
		return err
	}
	if err := c.chapters(ctx, chapters.orphans()); err != nil {
		return err
	}
	return c.users(ctx, users.orphans())
}

func syncUsers(ctx context.Context, r repos, desired []DesiredUser, l *lookup[*models.User, string], res *Result) error {
	for _, d := range desired {
		l.claim(d.Username)

		if u, ok := l.resolve(d.Username); ok {
			if err := r.users.UpdatePassword(ctx, u.ID, d.Password); err != nil {
				return fmt.Errorf("%w: update user %q: %w", common.ErrPersistence, d.Username, err)
			}
			u.Password = d.Password
		} else {
			created, err := r.users.Create(ctx, &models.User{Username: d.Username, Password: d.Password})
			if err != nil {
				return fmt.Errorf("%w: create user %q: %w", common.ErrPersistence, d.Username, err)
			}
			l.register(created)
		}
		res.UsersUpserted++
	}
	return nil
}

// syncChapters walks chapters and their questions in a single pass. Chapters
// are matched by position, questions by title regardless of chapter.
func syncChapters(ctx context.Context, r repos, desired []DesiredChapter,
	chapters *lookup[*models.Chapter, int], questions *lookup[*models.Question, string], res *Result) error {

	for i, dc := range desired {
		order := i + 1
		chapters.claim(order)
		res.ChaptersDesired++

		ch, ok := chapters.resolve(order)
		if !ok {
			ch = &models.Chapter{}
		}
		ch.Title = dc.Title
		ch.Description = sql.NullString{}
		ch.SortOrder = sql.NullInt64{Int64: int64(order), Valid: true}

		if ok {
			if err := r.chapters.Update(ctx, ch); err != nil {
				return fmt.Errorf("%w: update chapter %d: %w", common.ErrPersistence, order, err)
			}
		} else {
			created, err := r.chapters.Create(ctx, ch)
			if err != nil {
				return fmt.Errorf("%w: create chapter %d: %w", common.ErrPersistence, order, err)
			}
			chapters.register(created)
			ch = created
		}

		for j, dq := range dc.Questions {
			if err := syncQuestion(ctx, r, ch, order, j+1, dq, questions); err != nil {
				return err
			}
			res.QuestionsDesired++
		}
	}
	return nil
}

func syncQuestion(ctx context.Context, r repos, ch *models.Chapter, chapterOrder, questionOrder int,
	dq DesiredQuestion, l *lookup[*models.Question, string]) error {

	l.claim(dq.Title)

	q, ok := l.resolve(dq.Title)
	if !ok {
		q = &models.Question{Title: dq.Title}
	}
	q.QuestionNumber = sql.NullString{String: models.QuestionNumber(chapterOrder, questionOrder), Valid: true}
	q.Description = sql.NullString{String: dq.Description, Valid: true}
	q.TotalScore = dq.TotalScore
	q.SortOrder = sql.NullInt64{Int64: int64(questionOrder), Valid: true}
	q.ChapterID = ch.ID

	if ok {
		if err := r.questions.Update(ctx, q); err != nil {
			return fmt.Errorf("%w: update question %q: %w", common.ErrPersistence, dq.Title, err)
		}
		return nil
	}

	created, err := r.questions.Create(ctx, q)
	if err != nil {
		return fmt.Errorf("%w: create question %q: %w", common.ErrPersistence, dq.Title, err)
	}
	l.register(created)
	return nil
}
