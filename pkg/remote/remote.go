// Package remote exposes a calculator session as a WebSocket keypad. Each
// client message is a Request; the server answers every request, and greets
// every new connection, with the session snapshot.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/germanamz/calcly/pkg/session"
)

// Request is one client message. Exactly one field should be set; Keys takes
// precedence, then Recall, then ClearHistory.
type Request struct {
	Keys         string `json:"keys,omitempty"`
	Recall       *int   `json:"recall,omitempty"`
	ClearHistory bool   `json:"clear_history,omitempty"`
}

// Response carries the snapshot after a request, or the reason it failed.
type Response struct {
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Options configures a Handler.
type Options struct {
	// OriginPatterns lists the hosts allowed to connect from a browser.
	// Empty means same-origin only.
	OriginPatterns []string
	Logger         *slog.Logger
}

// Handler serves the keypad protocol over WebSocket.
type Handler struct {
	sess *session.Session
	opts Options
	log  *slog.Logger
}

// NewHandler creates a Handler driving sess.
func NewHandler(sess *session.Session, opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Handler{sess: sess, opts: opts, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.opts.OriginPatterns,
	})
	if err != nil {
		h.log.WarnContext(r.Context(), "websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow() //nolint:errcheck // best-effort cleanup

	ctx := r.Context()
	h.log.InfoContext(ctx, "keypad connected", "remote", r.RemoteAddr)

	err = h.serve(ctx, conn)

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		h.log.InfoContext(ctx, "keypad disconnected", "remote", r.RemoteAddr)
	default:
		if err != nil && !errors.Is(err, context.Canceled) {
			h.log.WarnContext(ctx, "keypad connection failed", "remote", r.RemoteAddr, "error", err)
		}
	}
}

func (h *Handler) serve(ctx context.Context, conn *websocket.Conn) error {
	snap := h.sess.Snapshot()
	if err := wsjson.Write(ctx, conn, Response{Snapshot: &snap}); err != nil {
		return err
	}

	for {
		var req Request
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			return err
		}

		if err := wsjson.Write(ctx, conn, h.handle(req)); err != nil {
			return err
		}
	}
}

func (h *Handler) handle(req Request) Response {
	var (
		snap session.Snapshot
		err  error
	)

	switch {
	case req.Keys != "":
		snap, err = h.sess.PressKeys(req.Keys)
	case req.Recall != nil:
		snap, err = h.sess.Recall(*req.Recall)
	case req.ClearHistory:
		snap = h.sess.ClearHistory()
	default:
		err = errors.New("remote: empty request")
	}

	if err != nil {
		return Response{Error: err.Error()}
	}

	return Response{Snapshot: &snap}
}

// Client is a keypad connection to a Handler.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to a keypad server at url (ws:// or wss://) and returns the
// client with the greeting snapshot.
func Dial(ctx context.Context, url string) (*Client, session.Snapshot, error) {
	conn, _, err := websocket.Dial(ctx, url, nil) //nolint:bodyclose // the response body is owned by the connection
	if err != nil {
		return nil, session.Snapshot{}, fmt.Errorf("remote: dial: %w", err)
	}

	c := &Client{conn: conn}

	var greeting Response
	if err := wsjson.Read(ctx, conn, &greeting); err != nil {
		_ = conn.CloseNow()
		return nil, session.Snapshot{}, fmt.Errorf("remote: greeting: %w", err)
	}

	if greeting.Snapshot == nil {
		_ = conn.CloseNow()
		return nil, session.Snapshot{}, errors.New("remote: greeting without snapshot")
	}

	return c, *greeting.Snapshot, nil
}

// Send issues a request and waits for the reply.
func (c *Client) Send(ctx context.Context, req Request) (session.Snapshot, error) {
	if err := wsjson.Write(ctx, c.conn, req); err != nil {
		return session.Snapshot{}, fmt.Errorf("remote: send: %w", err)
	}

	var resp Response
	if err := wsjson.Read(ctx, c.conn, &resp); err != nil {
		return session.Snapshot{}, fmt.Errorf("remote: receive: %w", err)
	}

	if resp.Error != "" {
		return session.Snapshot{}, fmt.Errorf("remote: %s", resp.Error)
	}

	if resp.Snapshot == nil {
		return session.Snapshot{}, errors.New("remote: response without snapshot")
	}

	return *resp.Snapshot, nil
}

// Press sends a key string such as "12+3=".
func (c *Client) Press(ctx context.Context, keys string) (session.Snapshot, error) {
	return c.Send(ctx, Request{Keys: keys})
}

// Close closes the connection normally.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
