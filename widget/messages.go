package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flowedit/remote"
)

type connectedMsg struct {
	owner *Instance
	conn  Conn
	err   error
}

type inboxMsg struct {
	owner *Instance
	conn  Conn
	msg   remote.Message
	ok    bool
}

func (i *Instance) listen(conn Conn) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-conn.Inbox()
		return inboxMsg{owner: i, conn: conn, msg: msg, ok: ok}
	}
}

// reap closes a connection that finished dialing after its instance was
// destroyed.
func (i *Instance) reap(msg connectedMsg) {
	if !i.destroyed || msg.conn == nil {
		return
	}
	_ = msg.conn.Close()
	i.logger.Debug("closed stale connection")
}

func (i *Instance) handleConnected(msg connectedMsg) tea.Cmd {
	if i.destroyed {
		i.reap(msg)
		return nil
	}
	if msg.err != nil {
		i.logger.Warn("connect failed", "err", msg.err)
		i.events.serverError(msg.err.Error())
		i.setState(remote.StateError)
		return nil
	}

	i.conn = msg.conn
	i.setState(remote.StateOpen)
	i.logger.Info("connected")

	i.send(remote.OptionsMessage(i.opts.Language, i.opts.ServerOptions))
	i.sendText(i.Text())
	return i.listen(msg.conn)
}

func (i *Instance) handleInbox(msg inboxMsg) tea.Cmd {
	if i.destroyed || msg.conn != i.conn {
		return nil
	}
	if !msg.ok {
		i.conn = nil
		if err := msg.conn.Err(); err != nil {
			i.logger.Warn("connection lost", "err", err)
			i.events.serverError(err.Error())
			i.setState(remote.StateError)
		} else {
			i.logger.Info("connection closed")
			i.setState(remote.StateClosed)
		}
		return nil
	}

	switch msg.msg.Type {
	case remote.TypeSlowUpdate:
		i.events.slowUpdateResult(msg.msg.SlowUpdate())
	case remote.TypeError:
		i.events.serverError(msg.msg.Message)
	default:
		i.logger.Debug("ignoring message", "type", msg.msg.Type)
	}
	return i.listen(msg.conn)
}
