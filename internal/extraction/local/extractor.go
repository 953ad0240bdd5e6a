package local

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/tasksift/internal/domain"
)

// Extractor is the rule-based extraction engine. It holds no per-call state
// and is safe for concurrent use.
type Extractor struct {
	vocab      *Vocabulary
	patterns   *patternRules
	dates      *DateResolver
	priorities *PriorityClassifier
	logger     *slog.Logger
}

type options struct {
	clock    Clock
	location *time.Location
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*options)

// WithClock sets the source of "today" for date resolution.
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLocation sets the time zone in which "today" is computed.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.location = loc }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewExtractor compiles vocab into an Extractor. A nil vocab uses
// DefaultVocabulary.
func NewExtractor(vocab *Vocabulary, opts ...Option) (*Extractor, error) {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}

	if err := vocab.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	patterns, err := compilePatterns(vocab)
	if err != nil {
		return nil, err
	}

	dates, err := NewDateResolver(vocab.Dates, o.clock, o.location)
	if err != nil {
		return nil, err
	}

	priorities, err := NewPriorityClassifier(vocab)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		vocab:      vocab,
		patterns:   patterns,
		dates:      dates,
		priorities: priorities,
		logger:     o.logger.With("component", "local_extractor"),
	}, nil
}

// Extract returns the tasks found in text, in source order, without
// deduplication. It never fails and never returns nil.
func (e *Extractor) Extract(ctx context.Context, text, taskContext string) ([]domain.Task, error) {
	tasks := []domain.Task{}

	for segment := range Segments(text) {
		title, family, ok := e.patterns.detect(segment)
		if !ok {
			continue
		}

		task, err := domain.NewTask(title, taskContext)
		if err != nil {
			continue
		}

		match := e.dates.Match(task.Title)
		task.DueDate = match.Date
		task.Priority = e.priorities.Classify(task.Title, task.Description)

		e.logger.DebugContext(ctx, "task detected",
			"pattern", family,
			"date_rule", match.Rule,
			"priority", task.Priority.String())

		tasks = append(tasks, task)
	}

	return tasks, nil
}

// AnalyzePriority classifies task by its own text. The context is ignored.
func (e *Extractor) AnalyzePriority(_ context.Context, task domain.Task, _ string) (domain.Priority, error) {
	return e.priorities.Classify(task.Title, task.Description), nil
}

// Today returns the anchor date used for relative dates.
func (e *Extractor) Today() domain.Date {
	return e.dates.Today()
}

// Vocabulary returns the vocabulary the extractor was built from.
func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

// Classifier returns the keyword priority classifier.
func (e *Extractor) Classifier() *PriorityClassifier {
	return e.priorities
}
