package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/models"
)

type fakeContactRepo struct {
	msgs   map[string]*models.ContactMessage
	nextID int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{msgs: map[string]*models.ContactMessage{}}
}

func (f *fakeContactRepo) Create(_ context.Context, msg *models.ContactMessage) (string, error) {
	f.nextID++
	msg.ID = fmt.Sprintf("msg-%d", f.nextID)
	f.msgs[msg.ID] = msg
	return msg.ID, nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, id string) (*models.ContactMessage, error) {
	if msg, ok := f.msgs[id]; ok {
		return msg, nil
	}
	return nil, fmt.Errorf("%w: %s", db.ErrNotFound, id)
}

func (f *fakeContactRepo) List(_ context.Context) ([]*models.ContactMessage, error) {
	var out []*models.ContactMessage
	for _, m := range f.msgs {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeContactRepo) Update(_ context.Context, msg *models.ContactMessage) error {
	f.msgs[msg.ID] = msg
	return nil
}

func (f *fakeContactRepo) Delete(_ context.Context, id string) error {
	delete(f.msgs, id)
	return nil
}

type fakeMailer struct {
	sent []string // recipients
	fail bool
}

func (f *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestSubmitStoresMessageDespiteMailFailure(t *testing.T) {
	repo := newFakeContactRepo()
	mailer := &fakeMailer{fail: true}
	svc := NewContactService(repo, mailer, "inbox@fooddelight.com", zap.NewNop())

	msg, err := svc.Submit(context.Background(), models.CreateContactRequest{
		Name: "Pat", Email: "pat@example.com", Message: "Table for two?",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Contains(t, repo.msgs, msg.ID)
}

func TestSubmitNotifiesAdminInbox(t *testing.T) {
	repo := newFakeContactRepo()
	mailer := &fakeMailer{}
	svc := NewContactService(repo, mailer, "inbox@fooddelight.com", zap.NewNop())

	_, err := svc.Submit(context.Background(), models.CreateContactRequest{
		Name: "Pat", Email: "pat@example.com", Message: "Hi",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "inbox@fooddelight.com", mailer.sent[0])
}

func TestReplyFailsWhenMailFails(t *testing.T) {
	repo := newFakeContactRepo()
	mailer := &fakeMailer{fail: true}
	svc := NewContactService(repo, mailer, "inbox@fooddelight.com", zap.NewNop())

	msg, err := svc.Submit(context.Background(), models.CreateContactRequest{
		Name: "Pat", Email: "pat@example.com", Message: "Hi",
	})
	require.NoError(t, err)

	_, err = svc.Reply(context.Background(), msg.ID, "We are open at noon.")
	assert.ErrorIs(t, err, ErrMailDelivery)
	assert.False(t, repo.msgs[msg.ID].IsReplied)
}

func TestReplyRecordsReplyState(t *testing.T) {
	repo := newFakeContactRepo()
	mailer := &fakeMailer{}
	svc := NewContactService(repo, mailer, "inbox@fooddelight.com", zap.NewNop())

	msg, err := svc.Submit(context.Background(), models.CreateContactRequest{
		Name: "Pat", Email: "pat@example.com", Message: "Hi",
	})
	require.NoError(t, err)
	mailer.sent = nil

	replied, err := svc.Reply(context.Background(), msg.ID, "We are open at noon.")
	require.NoError(t, err)
	assert.True(t, replied.IsReplied)
	assert.Equal(t, "We are open at noon.", replied.ReplyMessage)
	require.NotNil(t, replied.RepliedAt)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "pat@example.com", mailer.sent[0])
}

func TestMarkReadUnknownMessage(t *testing.T) {
	svc := NewContactService(newFakeContactRepo(), nil, "", zap.NewNop())

	_, err := svc.MarkRead(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrContactNotFound)
}
