package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/graph"
	"github.com/hearthapp/hearth/internal/metrics"
	"github.com/hearthapp/hearth/internal/storage"
	"github.com/hearthapp/hearth/pkg/idgen"
)

// DependencyService adds and removes dependency edges while keeping every
// project's graph free of self-edges, duplicates, cross-project edges and
// cycles.
type DependencyService struct {
	store   storage.Store
	audit   auditRecorder
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewDependencyService creates a new DependencyService. audit, log and m may be nil.
func NewDependencyService(store storage.Store, audit AuditSink, log *zap.Logger, m *metrics.Metrics) *DependencyService {
	log = nopIfNil(log)
	return &DependencyService{
		store:   store,
		audit:   auditRecorder{sink: audit, log: log},
		log:     log,
		metrics: m,
	}
}

// AddDependencyInput contains the input for adding an edge.
type AddDependencyInput struct {
	DependentTaskID string
	BlockingTaskID  string
	DependencyType  domain.DependencyType
}

// AddDependency records that DependentTaskID cannot start until
// BlockingTaskID is done.
func (s *DependencyService) AddDependency(ctx context.Context, scope domain.Scope, input AddDependencyInput) (*domain.DependencyEdge, error) {
	edge, projectID, err := s.addDependency(ctx, scope, input)
	s.metrics.RecordMutation("add", resultLabel(err))
	if err != nil {
		s.logRejected("add dependency", err,
			zap.String("dependent_task_id", input.DependentTaskID),
			zap.String("blocking_task_id", input.BlockingTaskID))
		return nil, err
	}

	s.audit.record(ctx, domain.NewEdgeAuditEntry(scope, domain.ActionAddEdge, projectID, edge))
	s.log.Info("dependency added",
		zap.String("dependency_id", edge.ID),
		zap.String("project_id", projectID))
	return edge, nil
}

func (s *DependencyService) addDependency(ctx context.Context, scope domain.Scope, input AddDependencyInput) (*domain.DependencyEdge, string, error) {
	if input.BlockingTaskID == "" {
		return nil, "", domain.NewMissingBlockingTaskError()
	}
	if input.DependentTaskID == input.BlockingTaskID {
		return nil, "", domain.NewSelfDependencyError(input.DependentTaskID)
	}
	depType := input.DependencyType
	if depType == "" {
		depType = domain.DefaultDependencyType
	}
	if !depType.IsValid() {
		return nil, "", domain.NewInvalidDependencyTypeError(depType)
	}

	dependent, err := s.store.Tasks().Get(ctx, input.DependentTaskID)
	if isNotFound(err) {
		return nil, "", domain.NewTaskNotFoundError("dependent", input.DependentTaskID)
	}
	if err != nil {
		return nil, "", storageError(err)
	}
	if !scope.Owns(dependent.FamilyID) {
		return nil, "", domain.NewForbiddenError("")
	}

	blocking, err := s.store.Tasks().Get(ctx, input.BlockingTaskID)
	if isNotFound(err) {
		return nil, "", domain.NewTaskNotFoundError("blocking", input.BlockingTaskID)
	}
	if err != nil {
		return nil, "", storageError(err)
	}
	if blocking.ProjectID != dependent.ProjectID {
		return nil, "", domain.NewCrossProjectError()
	}

	id, err := idgen.NewDependencyID()
	if err != nil {
		return nil, "", domain.NewInternalError(err)
	}
	edge := &domain.DependencyEdge{
		ID:              id,
		DependentTaskID: dependent.ID,
		BlockingTaskID:  blocking.ID,
		DependencyType:  depType,
		CreatedAt:       time.Now().UTC(),
	}

	projectID := dependent.ProjectID
	err = s.store.WithProjectTx(ctx, projectID, func(tx storage.TxStore) error {
		return s.insertChecked(ctx, tx, edge)
	})
	if err != nil {
		return nil, "", storageError(err)
	}
	return edge, projectID, nil
}

// insertChecked runs the duplicate and cycle checks and the insert against
// one consistent view of the project's edges.
func (s *DependencyService) insertChecked(ctx context.Context, tx storage.TxStore, edge *domain.DependencyEdge) error {
	dependent, err := tx.Tasks().Get(ctx, edge.DependentTaskID)
	if isNotFound(err) {
		return domain.NewTaskNotFoundError("dependent", edge.DependentTaskID)
	}
	if err != nil {
		return storageError(err)
	}
	if _, err := tx.Tasks().Get(ctx, edge.BlockingTaskID); err != nil {
		if isNotFound(err) {
			return domain.NewTaskNotFoundError("blocking", edge.BlockingTaskID)
		}
		return storageError(err)
	}

	_, err = tx.Dependencies().FindByPair(ctx, edge.DependentTaskID, edge.BlockingTaskID)
	if err == nil {
		return domain.NewDependencyExistsError(edge.DependentTaskID, edge.BlockingTaskID)
	}
	if !isNotFound(err) {
		return storageError(err)
	}

	edges, err := tx.Dependencies().ListForProject(ctx, dependent.ProjectID)
	if err != nil {
		return storageError(err)
	}

	started := time.Now()
	g := graph.New(edges)
	cycle := g.WouldCreateCycle(edge.DependentTaskID, edge.BlockingTaskID)
	s.metrics.ObserveCycleCheck(time.Since(started))
	if cycle {
		if ce := s.log.Check(zap.DebugLevel, "cycle rejected"); ce != nil {
			ce.Write(zap.Strings("path", g.Path(edge.DependentTaskID, edge.BlockingTaskID)))
		}
		return domain.NewCycleDetectedError(edge.DependentTaskID, edge.BlockingTaskID)
	}

	if err := tx.Dependencies().Insert(ctx, edge); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return domain.NewDependencyExistsError(edge.DependentTaskID, edge.BlockingTaskID)
		}
		return storageError(err)
	}
	return nil
}

// RemoveDependency deletes an edge by id. Removing an edge cannot create a
// cycle, so no graph check or project lock is needed.
func (s *DependencyService) RemoveDependency(ctx context.Context, scope domain.Scope, edgeID string) error {
	edge, projectID, err := s.removeDependency(ctx, scope, edgeID)
	s.metrics.RecordMutation("remove", resultLabel(err))
	if err != nil {
		s.logRejected("remove dependency", err, zap.String("dependency_id", edgeID))
		return err
	}

	s.audit.record(ctx, domain.NewEdgeAuditEntry(scope, domain.ActionRemoveEdge, projectID, edge))
	s.log.Info("dependency removed",
		zap.String("dependency_id", edge.ID),
		zap.String("project_id", projectID))
	return nil
}

func (s *DependencyService) removeDependency(ctx context.Context, scope domain.Scope, edgeID string) (*domain.DependencyEdge, string, error) {
	if edgeID == "" {
		return nil, "", domain.NewInvalidArgumentError("Dependency ID is required")
	}

	edge, err := s.store.Dependencies().FindByID(ctx, edgeID)
	if isNotFound(err) {
		return nil, "", domain.NewDependencyNotFoundError(edgeID)
	}
	if err != nil {
		return nil, "", storageError(err)
	}

	dependent, err := s.store.Tasks().Get(ctx, edge.DependentTaskID)
	if isNotFound(err) {
		return nil, "", domain.NewDependencyNotFoundError(edgeID)
	}
	if err != nil {
		return nil, "", storageError(err)
	}
	if !scope.Owns(dependent.FamilyID) {
		return nil, "", domain.NewForbiddenError("")
	}

	if err := s.store.Dependencies().DeleteByID(ctx, edgeID); err != nil {
		if isNotFound(err) {
			return nil, "", domain.NewDependencyNotFoundError(edgeID)
		}
		return nil, "", storageError(err)
	}
	return edge, dependent.ProjectID, nil
}

// ListForTask returns the edges on both sides of a task.
func (s *DependencyService) ListForTask(ctx context.Context, scope domain.Scope, taskID string) (*domain.TaskDependencies, error) {
	task, err := s.store.Tasks().Get(ctx, taskID)
	if isNotFound(err) {
		return nil, domain.NewTaskNotFoundError("", taskID)
	}
	if err != nil {
		return nil, storageError(err)
	}
	if !scope.Owns(task.FamilyID) {
		return nil, domain.NewForbiddenError("")
	}

	deps, err := s.store.Dependencies().ListForTask(ctx, taskID)
	if err != nil {
		return nil, storageError(err)
	}
	return deps, nil
}

// ListForProject returns the complete edge set of a project.
func (s *DependencyService) ListForProject(ctx context.Context, scope domain.Scope, projectID string) ([]*domain.DependencyEdge, error) {
	project, err := s.store.Projects().Get(ctx, projectID)
	if isNotFound(err) {
		return nil, domain.NewProjectNotFoundError(projectID)
	}
	if err != nil {
		return nil, storageError(err)
	}
	if !scope.Owns(project.FamilyID) {
		return nil, domain.NewForbiddenError("")
	}

	edges, err := s.store.Dependencies().ListForProject(ctx, projectID)
	if err != nil {
		return nil, storageError(err)
	}
	return edges, nil
}

func (s *DependencyService) logRejected(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if domain.IsKind(err, domain.KindUnavailable) || domain.IsKind(err, domain.KindInternal) {
		s.log.Error(msg+" failed", fields...)
		return
	}
	s.log.Debug(msg+" rejected", fields...)
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if de, ok := domain.AsDomainError(err); ok {
		return string(de.Code)
	}
	return string(domain.ErrCodeInternalError)
}
