// Package datasync reconciles the store against a desired-state JSON
// document of users, chapters and questions.
//
// A run loads and parses the document, then inside one transaction reads the
// persisted state, upserts every desired entry and cascade-deletes whatever
// the document no longer names. Users and questions keep their identity by
// natural key (username, title); chapters by position. Records that survive
// keep their IDs, so answers attached to them survive too.
package datasync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tao1925/poc-web/internal/common"
	"github.com/Tao1925/poc-web/internal/dbx"
	"github.com/Tao1925/poc-web/internal/logging"
	sc "github.com/Tao1925/poc-web/internal/server/config"
	"github.com/Tao1925/poc-web/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type Service struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	loader      *Loader
	logger      logging.Logger
}

func NewService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config, logger logging.Logger) *Service {
	return &Service{
		db:          db,
		repomanager: repomanager,
		config:      config,
		loader:      NewLoader(config),
		logger:      logger,
	}
}

// Startup is the host entry point. It does nothing when data sync is
// disabled and returns a nil Result in that case.
func (s *Service) Startup(ctx context.Context) (*Result, error) {
	if !s.config.DataSyncEnabled {
		s.logger.Info(ctx, "data sync disabled")
		return nil, nil
	}

	if s.config.DataSyncTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.DataSyncTimeout)
		defer cancel()
	}

	location := s.config.DataSyncLocation
	if location == "" {
		location = common.DefaultDataSyncLocation
	}
	return s.Run(ctx, location)
}

// Run fetches the document at location and reconciles the store with it.
// Nothing is written unless the whole run succeeds.
func (s *Service) Run(ctx context.Context, location string) (*Result, error) {
	runID := uuid.NewString()
	log := s.logger.With("run_id", runID, "location", location)

	data, err := s.loader.Load(ctx, location)
	if err != nil {
		log.Error(ctx, "data sync failed", "error", err)
		return nil, err
	}

	doc, err := ParseDocument(data)
	if err != nil {
		log.Error(ctx, "data sync failed", "error", err)
		return nil, err
	}

	log.Info(ctx, "data sync start")
	res, err := s.apply(ctx, runID, doc)
	if err != nil {
		log.Error(ctx, "data sync failed", "error", err)
		return nil, err
	}

	log.Info(ctx, "data sync done",
		"users_upserted", res.UsersUpserted,
		"users_deleted", res.UsersDeleted,
		"chapters_desired", res.ChaptersDesired,
		"chapters_deleted", res.ChaptersDeleted,
		"questions_desired", res.QuestionsDesired,
		"questions_deleted", res.QuestionsDeleted,
		"answers_deleted", res.AnswersDeleted,
	)
	return res, nil
}

// Reconcile applies an already parsed document.
func (s *Service) Reconcile(ctx context.Context, doc *Document) (*Result, error) {
	return s.apply(ctx, uuid.NewString(), doc)
}

func (s *Service) apply(ctx context.Context, runID string, doc *Document) (*Result, error) {
	var res *Result
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res = &Result{RunID: runID}
		return reconcile(ctx, bind(s.repomanager, tx), doc, res)
	})
	if err != nil {
		if !errors.Is(err, common.ErrPersistence) {
			err = fmt.Errorf("%w: %w", common.ErrPersistence, err)
		}
		return nil, err
	}
	return res, nil
}
