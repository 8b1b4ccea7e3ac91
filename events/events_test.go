package events

import (
	"blog/db"
	"blog/models"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nsqio/go-nsq"
	"gorm.io/driver/sqlite"
)

func setupDB(t *testing.T) {
	t.Helper()
	instance, err := db.Open(sqlite.Open(db.SQLiteDSN(filepath.Join(t.TempDir(), "test.db"))))
	if err != nil {
		t.Fatal(err)
	}
	db.Instance = instance
	models.Init()
}

type inbox struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
}

func (in *inbox) client() *ConnectedClient {
	return &ConnectedClient{Send: func(data []byte) bool {
		in.mu.Lock()
		defer in.mu.Unlock()
		if in.closed {
			return false
		}
		in.messages = append(in.messages, data)
		return true
	}}
}

func (in *inbox) count() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.messages)
}

func TestHub(t *testing.T) {
	hub := NewHub()
	var phone, laptop inbox
	phoneClient, laptopClient := phone.client(), laptop.client()
	hub.AddClient(1, phoneClient)
	hub.AddClient(1, laptopClient)

	if sent := hub.SendToUser(1, []byte("hi")); sent != 2 {
		t.Errorf("SendToUser() = %d, want 2", sent)
	}
	if sent := hub.SendToUser(2, []byte("hi")); sent != 0 {
		t.Errorf("SendToUser() to a user without sockets = %d", sent)
	}

	laptop.mu.Lock()
	laptop.closed = true
	laptop.mu.Unlock()
	if sent := hub.SendToUser(1, []byte("again")); sent != 1 {
		t.Errorf("SendToUser() with a dead socket = %d, want 1", sent)
	}

	hub.RemoveClient(1, laptopClient)
	if hub.Connected(1) != 1 {
		t.Errorf("Connected() = %d after removing one socket", hub.Connected(1))
	}
	hub.RemoveClient(1, phoneClient)
	if hub.Connected(1) != 0 || hub.users.Has(socketID(1)) {
		t.Error("user still registered after the last socket left")
	}
	if phone.count() != 2 || laptop.count() != 1 {
		t.Errorf("delivered: phone %d laptop %d", phone.count(), laptop.count())
	}
}

func TestLocalPublisher_NotifiesFollowersOnly(t *testing.T) {
	setupDB(t)
	author, _ := models.UserCreate("author", "", "password", false)
	fan, _ := models.UserCreate("fan", "", "password", false)
	stranger, _ := models.UserCreate("stranger", "", "password", false)
	if err := models.FollowAuthor(fan.ID, author.ID); err != nil {
		t.Fatal(err)
	}

	hub := NewHub()
	var fanBox, strangerBox, authorBox inbox
	hub.AddClient(fan.ID, fanBox.client())
	hub.AddClient(stranger.ID, strangerBox.client())
	hub.AddClient(author.ID, authorBox.client())

	post, err := models.PostCreate(author.ID, "hello followers", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	post.Author = author
	publisher := &LocalPublisher{Hub: hub}
	if err := publisher.Publish(NewPostPublished(&post)); err != nil {
		t.Fatal(err)
	}

	if fanBox.count() != 1 || strangerBox.count() != 0 || authorBox.count() != 0 {
		t.Fatalf("delivered: fan %d stranger %d author %d", fanBox.count(), strangerBox.count(), authorBox.count())
	}
	var got PostPublished
	if err := json.Unmarshal(fanBox.messages[0], &got); err != nil {
		t.Fatal(err)
	}
	if got.Type != TypePostPublished || got.PostID != post.ID || got.Author != "author" || got.Group != nil {
		t.Errorf("event = %+v", got)
	}
}

func TestNSQPublisher_HandleMessage(t *testing.T) {
	setupDB(t)
	author, _ := models.UserCreate("author", "", "password", false)
	fan, _ := models.UserCreate("fan", "", "password", false)
	_ = models.FollowAuthor(fan.ID, author.ID)

	hub := NewHub()
	var fanBox inbox
	hub.AddClient(fan.ID, fanBox.client())
	p := &NSQPublisher{hub: hub}

	body, _ := json.Marshal(PostPublished{Type: TypePostPublished, PostID: 7, AuthorID: author.ID, Author: "author"})
	messages := [][]byte{body, []byte("{broken"), []byte(`{"type":"something_else","author_id":1}`)}
	for _, m := range messages {
		if err := p.HandleMessage(nsq.NewMessage(nsq.MessageID{}, m)); err != nil {
			t.Errorf("HandleMessage(%s) = %v", m, err)
		}
	}
	if fanBox.count() != 1 {
		t.Errorf("fan got %d messages, want 1", fanBox.count())
	}
}
