package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func wsURL(s *httptest.Server) string { return "ws" + strings.TrimPrefix(s.URL, "http") }

// echoServer answers every message with an error message naming it.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			var msg Message
			if err := ws.ReadJSON(&msg); err != nil {
				return
			}
			reply := Message{Type: TypeError, Message: string(msg.Type) + ":" + msg.Text}
			if err := ws.WriteJSON(reply); err != nil {
				return
			}
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func recv(t *testing.T, c *Conn) (Message, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.Inbox():
		return msg, ok
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for inbox")
		return Message{}, false
	}
}

func TestConn_SendsInOrder(t *testing.T) {
	s := echoServer(t)
	c, err := Dial(context.Background(), wsURL(s), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	for _, text := range []string{"a", "b", "c"} {
		if err := c.Send(TextMessage(text)); err != nil {
			t.Fatalf("Send(%q): %v", text, err)
		}
	}
	if err := c.Send(SlowUpdateRequest()); err != nil {
		t.Fatalf("Send(slowUpdate): %v", err)
	}

	for _, want := range []string{"text:a", "text:b", "text:c", "slowUpdate:"} {
		msg, ok := recv(t, c)
		if !ok {
			t.Fatalf("inbox closed early, err=%v", c.Err())
		}
		if msg.Type != TypeError || msg.Message != want {
			t.Fatalf("reply: got %s %q, want error %q", msg.Type, msg.Message, want)
		}
	}
}

func TestConn_CloseStopsSending(t *testing.T) {
	s := echoServer(t)
	c, err := Dial(context.Background(), wsURL(s), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := c.Send(TextMessage("late")); !errors.Is(err, ErrClosed) {
		t.Fatalf("Send after Close: got %v, want ErrClosed", err)
	}
	if _, ok := recv(t, c); ok {
		t.Fatalf("inbox still open after Close")
	}
	if err := c.Err(); err != nil {
		t.Fatalf("Err after clean Close: %v", err)
	}
}

func TestConn_ServerDropReportsError(t *testing.T) {
	upgrader := websocket.Upgrader{}
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// Drop the TCP connection without a close frame.
		ws.UnderlyingConn().Close()
	}))
	defer s.Close()

	c, err := Dial(context.Background(), wsURL(s), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	if _, ok := recv(t, c); ok {
		t.Fatalf("got message, want closed inbox")
	}
	if c.Err() == nil {
		t.Fatalf("Err after drop: got nil, want error")
	}
	if err := c.Send(TextMessage("x")); !errors.Is(err, ErrClosed) {
		t.Fatalf("Send after drop: got %v, want ErrClosed", err)
	}
}

func TestConn_ServerCloseFrameIsClean(t *testing.T) {
	upgrader := websocket.Upgrader{}
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		_ = ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		var msg Message
		_ = ws.ReadJSON(&msg)
	}))
	defer s.Close()

	c, err := Dial(context.Background(), wsURL(s), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	if _, ok := recv(t, c); ok {
		t.Fatalf("got message, want closed inbox")
	}
	if err := c.Err(); err != nil {
		t.Fatalf("Err after close frame: got %v, want nil", err)
	}
}

func TestDial_BadHandshake(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	defer s.Close()

	_, err := Dial(context.Background(), wsURL(s), nil)
	if !errors.Is(err, websocket.ErrBadHandshake) {
		t.Fatalf("Dial error: got %v, want ErrBadHandshake", err)
	}
}
