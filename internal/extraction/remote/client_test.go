package remote

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasksift/internal/domain"
	"github.com/phrazzld/tasksift/internal/extraction"
	"github.com/phrazzld/tasksift/internal/extraction/local"
	"github.com/phrazzld/tasksift/internal/mocks"
	"github.com/phrazzld/tasksift/internal/platform/logger"
)

type failureRecorder struct {
	extraction.NopRecorder
	kinds []string
}

func (r *failureRecorder) ObserveRemoteFailure(operation, kind string) {
	r.kinds = append(r.kinds, operation+":"+kind)
}

func newTestClient(t *testing.T, completer extraction.Completer, opts ...Option) (*Client, *logger.TestLogBuffer) {
	t.Helper()

	monday := time.Date(2025, time.July, 14, 9, 0, 0, 0, time.UTC)
	fallback, err := local.NewExtractor(nil,
		local.WithClock(func() time.Time { return monday }),
		local.WithLocation(time.UTC))
	require.NoError(t, err)

	log, buf := logger.GetTestLogger(t)
	c, err := NewClient(completer, fallback, log, opts...)
	require.NoError(t, err)
	return c, buf
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	fallback, err := local.NewExtractor(nil)
	require.NoError(t, err)

	_, err = NewClient(nil, fallback, log)
	assert.ErrorIs(t, err, extraction.ErrInvalidConfig)

	_, err = NewClient(&mocks.MockCompleter{}, nil, log)
	assert.ErrorIs(t, err, extraction.ErrInvalidConfig)

	_, err = NewClient(&mocks.MockCompleter{}, fallback, nil)
	assert.Error(t, err)

	_, err = NewClient(&mocks.MockCompleter{}, fallback, log,
		WithExtractionPrompt(filepath.Join(t.TempDir(), "missing.tmpl")))
	assert.ErrorIs(t, err, extraction.ErrInvalidConfig)
}

func TestExtractionPrompt(t *testing.T) {
	t.Parallel()

	completer := mocks.NewMockCompleterWithResponse("[]")
	c, _ := newTestClient(t, completer)

	tasks, err := c.Extract(context.Background(), "Enviar el informe mañana", "student")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	prompt := completer.LastPrompt()
	assert.Contains(t, prompt, "Contexto del usuario: Estudiante universitario (priorizar exámenes, proyectos académicos)")
	assert.Contains(t, prompt, "usa la fecha actual: 2025-07-14")
	assert.Contains(t, prompt, "Texto a analizar:\nEnviar el informe mañana")
	assert.Contains(t, prompt, `"priority": "CRITICA|ALTA|MEDIA|BAJA"`)
}

func TestExtractionPromptUnknownContextUsesMixed(t *testing.T) {
	t.Parallel()

	completer := mocks.NewMockCompleterWithResponse("[]")
	c, _ := newTestClient(t, completer)

	_, err := c.Extract(context.Background(), "Algo que hacer pronto", "astronaut")
	require.NoError(t, err)
	assert.Contains(t, completer.LastPrompt(), "Mixto (equilibrar trabajo, estudios y vida personal)")
}

func TestExtractReturnsCompleterError(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, mocks.MockCompleterWithContentBlocked())

	tasks, err := c.Extract(context.Background(), "Enviar el informe hoy", "work")
	assert.Nil(t, tasks)
	assert.ErrorIs(t, err, extraction.ErrContentBlocked)
}

func TestExtractUnparseableAnswerUsesLocalOnRawAnswer(t *testing.T) {
	t.Parallel()

	answer := "No pude generar JSON.\n- Revisar el contrato hoy\n- Llamar al cliente mañana"
	rec := &failureRecorder{}
	completer := mocks.NewMockCompleterWithResponse(answer)
	c, buf := newTestClient(t, completer, WithRecorder(rec))

	tasks, err := c.Extract(context.Background(), "texto original sin tareas", "work")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Revisar el contrato hoy", tasks[0].Title)
	assert.Equal(t, "2025-07-14", tasks[0].DueDate.String())
	assert.Equal(t, "Llamar al cliente mañana", tasks[1].Title)
	assert.Equal(t, domain.PriorityAlta, tasks[1].Priority)
	assert.Equal(t, "work", tasks[1].Context)

	assert.Equal(t, 1, completer.Calls())
	assert.Equal(t, []string{"extract:parse"}, rec.kinds)
	logger.AssertLogContains(t, buf, "remote answer is not a task array")
}

func TestAnalyzePriority(t *testing.T) {
	t.Parallel()

	due := domain.NewDate(2025, time.July, 22)

	tests := []struct {
		name   string
		answer string
		task   domain.Task
		want   domain.Priority
		prompt []string
	}{
		{
			name:   "exact token",
			answer: "CRITICA",
			task:   domain.Task{Title: "Examen final", DueDate: &due},
			want:   domain.PriorityCritica,
			prompt: []string{"Tarea: Examen final", "Descripción: Sin descripción", "Fecha límite: 2025-07-22"},
		},
		{
			name:   "fragment fallback",
			answer: "Yo diría que la prioridad es alta.",
			task:   domain.Task{Title: "Preparar slides", Description: "para el lunes"},
			want:   domain.PriorityAlta,
			prompt: []string{"Descripción: para el lunes", "Fecha límite: Sin fecha"},
		},
		{
			name:   "english fragment",
			answer: "low",
			task:   domain.Task{Title: "Organizar fotos"},
			want:   domain.PriorityBaja,
		},
		{
			name:   "unintelligible answer",
			answer: "???",
			task:   domain.Task{Title: "Algo"},
			want:   domain.PriorityMedia,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := mocks.NewMockCompleterWithResponse(tt.answer)
			c, _ := newTestClient(t, completer)

			got, err := c.AnalyzePriority(context.Background(), tt.task, "work")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			prompt := completer.LastPrompt()
			assert.Contains(t, prompt, "Contexto del usuario: Profesional (priorizar reuniones, deadlines laborales)")
			for _, fragment := range tt.prompt {
				assert.Contains(t, prompt, fragment)
			}
		})
	}
}

func TestAnalyzePriorityReturnsCompleterError(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, mocks.MockCompleterWithTransportError())

	_, err := c.AnalyzePriority(context.Background(), domain.Task{Title: "Pagar la renta"}, "")
	assert.ErrorIs(t, err, extraction.ErrRemoteTransport)
}

func TestPromptOverrideFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	extractPath := filepath.Join(dir, "extract.tmpl")
	priorityPath := filepath.Join(dir, "priority.tmpl")
	require.NoError(t, os.WriteFile(extractPath, []byte("EXTRACT {{.Today}} {{.Text}}"), 0o600))
	require.NoError(t, os.WriteFile(priorityPath, []byte("PRIORITY {{.Title}}"), 0o600))

	completer := mocks.NewMockCompleterWithResponse("[]")
	c, _ := newTestClient(t, completer, WithExtractionPrompt(extractPath), WithPriorityPrompt(priorityPath))

	_, err := c.Extract(context.Background(), "hola", "")
	require.NoError(t, err)
	assert.Equal(t, "EXTRACT 2025-07-14 hola", completer.LastPrompt())

	_, err = c.AnalyzePriority(context.Background(), domain.Task{Title: "Tarea"}, "")
	require.NoError(t, err)
	assert.Equal(t, "PRIORITY Tarea", completer.LastPrompt())
}

func TestPromptOverrideWithUnknownFieldFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Nope"), 0o600))

	log, _ := logger.GetTestLogger(t)
	fallback, err := local.NewExtractor(nil)
	require.NoError(t, err)

	_, err = NewClient(&mocks.MockCompleter{}, fallback, log, WithPriorityPrompt(path))
	assert.ErrorIs(t, err, extraction.ErrInvalidConfig)
}
