package e2e_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ctkqiang/redrtc/internal/dispatch"
	"github.com/ctkqiang/redrtc/internal/ingress"
	"github.com/ctkqiang/redrtc/internal/signaling"
	wstransport "github.com/ctkqiang/redrtc/internal/transport/websocket"
)

// newDialer mirrors the handshake timeout the teacher library's e2e
// suite uses for every WebSocket connection under test.
func newDialer() *websocket.Dialer {
	return &websocket.Dialer{HandshakeTimeout: 5 * time.Second}
}

type testServer struct {
	httpSrv *httptest.Server
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	core := signaling.New(16, 16)
	queue := ingress.New(256)
	log := zerolog.Nop()
	wsServer := wstransport.NewServer(queue, wstransport.RateLimitConfig{Enabled: false}, nil, &log)

	httpSrv := httptest.NewServer(wsServer)

	ctx, cancel := context.WithCancel(context.Background())
	go dispatch.New(core, queue, 60, &log).Run(ctx)

	t.Cleanup(func() {
		cancel()
		httpSrv.Close()
	})

	return &testServer{httpSrv: httpSrv}
}

func (s *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(s.httpSrv.URL, "http")
	conn, _, err := newDialer().Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	return conn
}

type wireFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) wireFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error: %v", err)
	}
	var w wireFrame
	if err := json.Unmarshal(raw, &w); err != nil {
		t.Fatalf("Unmarshal() error: %v, raw=%s", err, raw)
	}
	return w
}

func sendFrame(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(wireFrame{Event: event, Data: data})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		t.Fatalf("WriteMessage() error: %v", err)
	}
}

// TestTwoClientRoomFormation drives scenario S1 over a real dialed
// WebSocket connection through the full accept -> ingress -> dispatch
// -> signaling pipeline.
func TestTwoClientRoomFormation(t *testing.T) {
	t.Parallel()

	srv := startTestServer(t)

	connA := srv.dial(t)
	defer connA.Close()

	clientIDFrame := readFrame(t, connA)
	if clientIDFrame.Event != "client-id" {
		t.Fatalf("A's first event = %q, want client-id", clientIDFrame.Event)
	}
	idData := clientIDFrame.Data.(map[string]any)
	clientA := idData["clientId"].(string)

	sendFrame(t, connA, "join-room", map[string]any{"roomName": "demo"})

	roomCreated := readFrame(t, connA)
	if roomCreated.Event != "room-created" {
		t.Fatalf("event = %q, want room-created", roomCreated.Event)
	}
	roomData := roomCreated.Data.(map[string]any)
	roomID := roomData["roomId"].(string)

	participants := readFrame(t, connA)
	if participants.Event != "participants" {
		t.Fatalf("event = %q, want participants", participants.Event)
	}
	pData := participants.Data.(map[string]any)
	ids := pData["participants"].([]any)
	if len(ids) != 1 || ids[0] != clientA {
		t.Fatalf("participants = %v, want [%s]", ids, clientA)
	}

	connB := srv.dial(t)
	defer connB.Close()
	readFrame(t, connB) // client-id

	sendFrame(t, connB, "join-room", map[string]any{"roomId": roomID})

	for _, conn := range []*websocket.Conn{connA, connB} {
		frame := readFrame(t, conn)
		if frame.Event != "participants" {
			t.Fatalf("event = %q, want participants", frame.Event)
		}
		data := frame.Data.(map[string]any)
		ids := data["participants"].([]any)
		if len(ids) != 2 {
			t.Fatalf("participants = %v, want 2 members", ids)
		}
	}
}

// TestOfferRelayRoomScoped reproduces scenario S2: two
// participants of the same room, A offers to B, B receives it tagged
// with fromClientId, A receives nothing further.
func TestOfferRelayRoomScoped(t *testing.T) {
	t.Parallel()

	srv := startTestServer(t)

	connA := srv.dial(t)
	defer connA.Close()
	clientA := readFrame(t, connA).Data.(map[string]any)["clientId"].(string)

	sendFrame(t, connA, "join-room", map[string]any{"roomName": "demo"})
	roomCreated := readFrame(t, connA)
	roomID := roomCreated.Data.(map[string]any)["roomId"].(string)
	readFrame(t, connA) // participants (A alone)

	connB := srv.dial(t)
	defer connB.Close()
	clientIDFrame := readFrame(t, connB)
	clientB := clientIDFrame.Data.(map[string]any)["clientId"].(string)

	sendFrame(t, connB, "join-room", map[string]any{"roomId": roomID})
	readFrame(t, connA) // participants (A, B)
	readFrame(t, connB) // participants (A, B)

	sendFrame(t, connA, "offer", map[string]any{
		"targetClientId": clientB,
		"offer":          map[string]any{"sdp": "v=0..."},
	})

	offerFrame := readFrame(t, connB)
	if offerFrame.Event != "offer" {
		t.Fatalf("event = %q, want offer", offerFrame.Event)
	}
	data := offerFrame.Data.(map[string]any)
	if data["fromClientId"] != clientA {
		t.Errorf("fromClientId = %v, want %v", data["fromClientId"], clientA)
	}
	offer := data["offer"].(map[string]any)
	if offer["sdp"] != "v=0..." {
		t.Errorf("offer.sdp = %v, want v=0...", offer["sdp"])
	}

	connA.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := connA.ReadMessage(); err == nil {
		t.Error("sender unexpectedly received a frame after relaying its own offer")
	}
}
