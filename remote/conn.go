package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrClosed = errors.New("connection closed")

const writeTimeout = 10 * time.Second

// Conn is a JSON message connection to the service.
//
// Send never blocks: messages are queued and written in order by a single
// writer goroutine. Received messages are delivered on Inbox, which is
// closed when the connection ends; Err then reports why.
type Conn struct {
	ws *websocket.Conn

	mu     sync.Mutex
	queue  []Message
	closed bool
	err    error

	wake  chan struct{}
	done  chan struct{}
	inbox chan Message

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Dial connects to url and starts the reader and writer goroutines.
func Dial(ctx context.Context, url string, header http.Header) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return newConn(ws), nil
}

func newConn(ws *websocket.Conn) *Conn {
	c := &Conn{
		ws:    ws,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
		inbox: make(chan Message, 16),
	}
	c.wg.Add(2)
	go c.readLoop()
	go c.writeLoop()
	return c
}

// Send queues msg for delivery. It returns ErrClosed once the connection
// has ended.
func (c *Conn) Send(msg Message) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.queue = append(c.queue, msg)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

func (c *Conn) Inbox() <-chan Message { return c.inbox }

// Err returns the error that ended the connection, or nil after a clean
// Close.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close ends the connection and waits for its goroutines. Queued messages
// that were not yet written are dropped.
func (c *Conn) Close() error {
	c.shutdown(nil)
	c.wg.Wait()
	return nil
}

func (c *Conn) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.err = err
		c.queue = nil
		c.mu.Unlock()

		close(c.done)
		if err == nil {
			deadline := time.Now().Add(time.Second)
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		}
		_ = c.ws.Close()
	})
}

func (c *Conn) readLoop() {
	defer c.wg.Done()
	defer close(c.inbox)

	for {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			select {
			case <-c.done:
			default:
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.shutdown(nil)
				} else {
					c.shutdown(fmt.Errorf("read: %w", err))
				}
			}
			return
		}
		select {
		case c.inbox <- msg:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) writeLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case <-c.wake:
		}

		for {
			c.mu.Lock()
			if len(c.queue) == 0 || c.closed {
				c.mu.Unlock()
				break
			}
			msg := c.queue[0]
			c.queue = c.queue[1:]
			c.mu.Unlock()

			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteJSON(msg); err != nil {
				c.shutdown(fmt.Errorf("write %s: %w", msg.Type, err))
				return
			}
		}
	}
}
