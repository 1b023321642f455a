// Package activitylog records structured audit entries for repository
// mutations. Each logged action fans out into one activity_logs row per
// configured scope, attributed to the current issuer.
package activitylog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fitra-dev/jejak-api/internal/models"
)

// Sink persists fan-out rows. Each row is written independently: logging is
// best-effort bookkeeping that runs strictly after the primary mutation has
// committed, so a failed row must not undo earlier ones.
type Sink interface {
	SaveAll(ctx context.Context, logs []*models.ActivityLog) error
}

// MessageContext is handed to a MessageBuilder together with the in-progress
// log record.
type MessageContext struct {
	Object Subject
	Issuer Subject
	Action string
}

// MessageBuilder computes the message field at build time. It is invoked for
// every log the owning Logger produces while set; the record's current
// Message is visible on the passed entry, so a builder can choose to keep an
// explicitly assigned message instead of replacing it.
type MessageBuilder func(entry *models.ActivityLog, ctx MessageContext) string

// Config declares how a governed repository is logged.
type Config struct {
	// Model is the governed repository's registry name, e.g. "Articles".
	Model string
	// Scope lists the initial scope declarations (any NormalizeScope form).
	// When empty the model itself becomes the only scope.
	Scope []interface{}
	// SystemScope additionally declares the application namespace as a scope
	// with the boolean "applies globally" sentinel id.
	SystemScope bool
	// Namespace is the system scope name, typically the application name.
	Namespace string
	// FieldScopes maps entity field names to scope model names: a non-empty
	// field value supplies that scope's id without an explicit entity
	// reference (e.g. "author_id" -> "Authors").
	FieldScopes map[string]string

	Sink   Sink
	Logger zerolog.Logger
}

// Event describes a committed repository mutation.
type Event struct {
	// Object is the entity that was saved or deleted.
	Object Subject
	// Changed lists the column names touched by an update. Ignored for
	// creates and deletes, which snapshot the full visible field set.
	Changed []string
	// Created is true when the save inserted a new row.
	Created bool
}

// Context carries overrides for a runtime (out-of-band) log call. Zero-value
// fields fall back to the logger's current configuration.
type Context struct {
	Object Subject
	Issuer Subject
	Scope  []interface{}
	Action string
	Data   map[string]interface{}
}

// Logger is the logging capability embedded by governed repositories. Scope
// and message state are mutable per-instance configuration guarded by a
// mutex. The acting identity is request-scoped: it rides on the
// context.Context handed to AfterSave/AfterDelete/Log, with the standing
// SetIssuer assignment as the fallback for non-request work.
type Logger struct {
	model       string
	fieldScopes map[string]string
	sink        Sink
	log         zerolog.Logger

	mu       sync.Mutex
	scope    *Scope
	original *Scope
	issuer   Subject
	builder  MessageBuilder
	message  string
}

// New builds a Logger from its typed configuration.
func New(cfg Config) *Logger {
	scope := NormalizeScope(cfg.Scope...)
	if scope.Len() == 0 && cfg.Model != "" {
		scope.Set(cfg.Model, nil)
	}
	if cfg.SystemScope && cfg.Namespace != "" {
		scope.Set(cfg.Namespace, true)
	}

	return &Logger{
		model:       cfg.Model,
		fieldScopes: cfg.FieldScopes,
		sink:        cfg.Sink,
		log:         cfg.Logger.With().Str("component", "activitylog").Str("model", cfg.Model).Logger(),
		scope:       scope,
		original:    scope.Clone(),
	}
}

// Model returns the governed repository's registry name.
func (l *Logger) Model() string {
	return l.model
}

// Scope returns a copy of the current scope map.
func (l *Logger) Scope() *Scope {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scope.Clone()
}

// SetScope merges the given declarations into the current scope map.
func (l *Logger) SetScope(declarations ...interface{}) {
	normalized := NormalizeScope(declarations...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scope.Merge(normalized)
}

// ResetScope restores the scope map computed at construction time.
func (l *Logger) ResetScope() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scope = l.original.Clone()
}

// Issuer returns the currently assigned issuer, if any.
func (l *Logger) Issuer() Subject {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.issuer
}

// SetIssuer assigns a standing actor for work that runs outside a request,
// such as seeding or batch jobs. Passing nil clears the assignment. An
// identity carried by the call's context (see WithIssuer) takes precedence.
// When the issuer's model is itself a declared scope, that scope's id is
// updated alongside.
func (l *Logger) SetIssuer(issuer Subject) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.issuer = issuer
	if issuer == nil {
		return
	}
	if id := PrimaryKeyString(issuer); id != "" && l.scope.Has(issuer.LogModel()) {
		l.scope.Set(issuer.LogModel(), id)
	}
}

// SetMessageBuilder installs (or, with nil, removes) the message callback.
func (l *Logger) SetMessageBuilder(builder MessageBuilder) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.builder = builder
}

// SetMessage assigns a one-off message consumed by the next lifecycle log.
func (l *Logger) SetMessage(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.message = message
}

// AfterSave records a committed create or update.
func (l *Logger) AfterSave(ctx context.Context, ev Event) error {
	if ev.Object == nil {
		return nil
	}

	scope, issuer, builder, message := l.snapshotState()
	issuer = resolveIssuer(ctx, issuer)
	foldIssuerScope(scope, issuer)

	entry := buildEntry(ev.Object, issuer)
	entry.Action = models.ActionUpdate
	if ev.Created {
		entry.Action = models.ActionCreate
	}
	entry.Data = mutationData(ev)
	entry.Message = message
	if builder != nil {
		entry.Message = builder(entry, MessageContext{Object: ev.Object, Issuer: issuer, Action: entry.Action})
	}

	return l.saveLogs(ctx, l.fanOut(scope, entry, ev.Object))
}

// AfterDelete records a committed delete with a full visible snapshot.
func (l *Logger) AfterDelete(ctx context.Context, ev Event) error {
	if ev.Object == nil {
		return nil
	}

	scope, issuer, builder, message := l.snapshotState()
	issuer = resolveIssuer(ctx, issuer)
	foldIssuerScope(scope, issuer)

	entry := buildEntry(ev.Object, issuer)
	entry.Action = models.ActionDelete
	entry.Data = models.LogData(ev.Object.LogSnapshot())
	entry.Message = message
	if builder != nil {
		entry.Message = builder(entry, MessageContext{Object: ev.Object, Issuer: issuer, Action: entry.Action})
	}

	return l.saveLogs(ctx, l.fanOut(scope, entry, ev.Object))
}

// Log writes a custom entry outside the save/delete lifecycle. Omitted
// context fields fall back to the logger's configured issuer and scope; a
// context issuer whose model is a declared scope joins the scope map for this
// call only.
func (l *Logger) Log(ctx context.Context, level, message string, logCtx Context) error {
	l.mu.Lock()
	issuer := logCtx.Issuer
	if issuer == nil {
		issuer = resolveIssuer(ctx, l.issuer)
	}
	var scope *Scope
	if len(logCtx.Scope) > 0 {
		scope = NormalizeScope(logCtx.Scope...)
	} else {
		scope = l.scope.Clone()
	}
	configured := l.scope.Clone()
	builder := l.builder
	l.mu.Unlock()

	entry := buildEntry(logCtx.Object, issuer)
	entry.Action = logCtx.Action
	if entry.Action == "" {
		entry.Action = models.ActionRuntime
	}
	if logCtx.Data != nil {
		entry.Data = models.LogData(logCtx.Data)
	} else if logCtx.Object != nil {
		entry.Data = models.LogData(logCtx.Object.LogSnapshot())
	}
	entry.Level = level
	if entry.Level == "" {
		entry.Level = models.LevelInfo
	}
	entry.Message = message
	if builder != nil {
		entry.Message = builder(entry, MessageContext{Object: logCtx.Object, Issuer: issuer, Action: entry.Action})
	}

	if entry.IssuerID != "" && configured.Has(entry.IssuerModel) {
		scope.Set(entry.IssuerModel, entry.IssuerID)
	}

	return l.saveLogs(ctx, l.fanOut(scope, entry, logCtx.Object))
}

// snapshotState copies the mutable configuration for one log build. The
// one-off message is consumed.
func (l *Logger) snapshotState() (*Scope, Subject, MessageBuilder, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	message := l.message
	l.message = ""
	return l.scope.Clone(), l.issuer, l.builder, message
}

// resolveIssuer prefers the identity carried by the request context over the
// standing assignment, so concurrent requests sharing one Logger never see
// each other's actor.
func resolveIssuer(ctx context.Context, assigned Subject) Subject {
	if issuer := IssuerFromContext(ctx); issuer != nil {
		return issuer
	}
	return assigned
}

// foldIssuerScope points a declared scope matching the issuer's model at the
// issuer's own id. Field scopes and, for the object's own model, the fresh
// primary key still take precedence during fan-out.
func foldIssuerScope(scope *Scope, issuer Subject) {
	if issuer == nil {
		return
	}
	if id := PrimaryKeyString(issuer); id != "" && scope.Has(issuer.LogModel()) {
		scope.Set(issuer.LogModel(), id)
	}
}

// buildEntry constructs the canonical, scope-less log record.
func buildEntry(object, issuer Subject) *models.ActivityLog {
	entry := &models.ActivityLog{Level: models.LevelInfo}
	if object != nil {
		entry.ObjectModel = object.LogModel()
		entry.ObjectID = PrimaryKeyString(object)
	}
	if issuer != nil {
		entry.IssuerModel = issuer.LogModel()
		entry.IssuerID = PrimaryKeyString(issuer)
	}
	return entry
}

// mutationData snapshots the fields recorded for a save: everything visible
// on create, only the changed columns on update.
func mutationData(ev Event) models.LogData {
	snapshot := ev.Object.LogSnapshot()
	if ev.Created || ev.Changed == nil {
		return models.LogData(snapshot)
	}

	data := models.LogData{}
	for _, field := range ev.Changed {
		if value, ok := snapshot[field]; ok {
			data[field] = value
		}
	}
	return data
}

// fanOut clones the canonical record once per resolvable scope. The object's
// own model always takes the object's fresh primary key; unresolved scopes
// produce no row; all rows of one call share a grouping id.
func (l *Logger) fanOut(scope *Scope, canonical *models.ActivityLog, object Subject) []*models.ActivityLog {
	working := scope.Clone()

	if object != nil && len(l.fieldScopes) > 0 {
		snapshot := object.LogSnapshot()
		for field, model := range l.fieldScopes {
			if !working.Has(model) {
				continue
			}
			if value, ok := snapshot[field]; ok && !emptyID(value) {
				working.Set(model, value)
			}
		}
	}

	grouping := uuid.NewString()
	logs := make([]*models.ActivityLog, 0, working.Len())
	working.Each(func(model string, id interface{}) {
		if object != nil && model == l.model {
			id = PrimaryKeyString(object)
		}
		if emptyID(id) {
			return
		}
		row := canonical.Clone()
		row.ScopeModel = model
		row.ScopeID = idString(id)
		row.Grouping = grouping
		logs = append(logs, row)
	})

	return logs
}

func (l *Logger) saveLogs(ctx context.Context, logs []*models.ActivityLog) error {
	if l.sink == nil || len(logs) == 0 {
		return nil
	}
	if err := l.sink.SaveAll(ctx, logs); err != nil {
		l.log.Error().Err(err).Int("rows", len(logs)).Msg("failed to persist activity logs")
		return err
	}
	l.log.Debug().Int("rows", len(logs)).Str("action", logs[0].Action).Msg("activity logged")
	return nil
}
