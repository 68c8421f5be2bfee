package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/taskmaster/internal/model"
)

var now = time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

func at(d time.Time) *time.Time { return &d }

type fakeSource struct {
	tasks      []model.Task
	categories []model.Category
}

func (f fakeSource) ListTasks() []model.Task          { return f.tasks }
func (f fakeSource) ListCategories() []model.Category { return f.categories }

type recorder struct {
	texts []string
	err   error
}

func (r *recorder) Notify(ctx context.Context, text string) error {
	if r.err != nil {
		return r.err
	}
	r.texts = append(r.texts, text)
	return nil
}

func source() fakeSource {
	return fakeSource{
		categories: []model.Category{{ID: "c1", Name: "Work", Color: "#4A6FA5"}},
		tasks: []model.Task{
			{ID: "1", Title: "Pay rent", Priority: model.PriorityHigh, CategoryID: "c1", DueDate: at(now.AddDate(0, 0, -2))},
			{ID: "2", Title: "Standup", Priority: model.PriorityMedium, CategoryID: "gone", DueDate: at(now.Add(2 * time.Hour))},
			{ID: "3", Title: "Done already", CategoryID: "c1", DueDate: at(now.AddDate(0, 0, -1)), Completed: true},
			{ID: "4", Title: "Someday", CategoryID: "c1"},
		},
	}
}

func newTestScheduler(src Source, n Notifier) *Scheduler {
	s := NewScheduler(src, n, time.UTC)
	s.now = func() time.Time { return now }
	return s
}

func TestBuildDigest(t *testing.T) {
	d := BuildDigest(source().tasks, now)
	require.Len(t, d.Overdue, 1)
	require.Len(t, d.DueToday, 1)
	assert.Equal(t, "1", d.Overdue[0].ID)
	assert.Equal(t, "2", d.DueToday[0].ID)
	assert.Equal(t, 3, d.Stats.Pending)
	assert.False(t, d.Empty())

	text := d.Render(source().categories)
	assert.Contains(t, text, "Tasks for Sun, May 10")
	assert.Contains(t, text, "! Pay rent [Work] due May 8")
	assert.Contains(t, text, "- Standup [Uncategorized]")
	assert.Contains(t, text, "3 pending, 25% complete")
	assert.NotContains(t, text, "Done already")
}

func TestScheduler_RunOnce(t *testing.T) {
	rec := &recorder{}
	sent, err := newTestScheduler(source(), rec).RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, rec.texts, 1)
	assert.Contains(t, rec.texts[0], "Overdue (1)")
}

func TestScheduler_SkipsEmptyDigest(t *testing.T) {
	rec := &recorder{}
	src := fakeSource{tasks: []model.Task{{ID: "1", Title: "no date"}}}

	sent, err := newTestScheduler(src, rec).RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, rec.texts)
}

func TestScheduler_NotifierError(t *testing.T) {
	boom := errors.New("offline")
	_, err := newTestScheduler(source(), &recorder{err: boom}).RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestScheduler_Schedule(t *testing.T) {
	s := newTestScheduler(source(), LogNotifier{})

	_, err := s.Schedule("0 8 * * *")
	require.NoError(t, err)
	_, err = s.Schedule("every morning")
	assert.Error(t, err)

	s.Start()
	s.Stop()
}

type fakeSender struct {
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestTelegramNotifier(t *testing.T) {
	fs := &fakeSender{}
	n := &TelegramNotifier{api: fs, chatID: 99}

	require.NoError(t, n.Notify(context.Background(), "hello"))
	require.Len(t, fs.sent, 1)
	msg, ok := fs.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(99), msg.ChatID)
	assert.Equal(t, "hello", msg.Text)

	_, err := NewTelegramNotifier("token", 0)
	assert.Error(t, err)
}
