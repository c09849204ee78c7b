package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/campusconnect/campusconnect/internal/cli/peer"
	"github.com/campusconnect/campusconnect/internal/cli/signaling"
	"github.com/campusconnect/campusconnect/internal/cli/ui"
	"github.com/campusconnect/campusconnect/internal/config"
)

// Delay before rejoining after a skip or partner-left, so the relay's
// teardown settles before the fresh join arrives.
const rejoinDelay = 1 * time.Second

const connectTimeout = 10 * time.Second

var (
	flagServer    string
	flagLabel     string
	flagSTUN      string
	flagTURN      string
	flagTURNUser  string
	flagTURNPass  string
	flagRelayChat bool
)

var matchCmd = &cobra.Command{
	Use:     "match",
	Aliases: []string{"m"},
	Short:   "Find a random partner and chat",
	Long: `Join the matchmaking pool and chat with whoever you get paired with.

Chat goes over a direct WebRTC data channel once negotiation completes,
and through the relay before that. Commands inside the chat:
  /skip   drop the current partner and search again
  /quit   leave

Examples:
  campusconnect match --label student@college.edu
  campusconnect match --server relay.example.com:5000
  campusconnect match --relay-chat`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMatch()
	},
}

func init() {
	matchCmd.Flags().StringVarP(&flagServer, "server", "s", "", "relay server host:port")
	matchCmd.Flags().StringVarP(&flagLabel, "label", "l", "", "display label sent at join time (e.g. your email)")
	matchCmd.Flags().StringVar(&flagSTUN, "stun", "", "STUN server URL")
	matchCmd.Flags().StringVar(&flagTURN, "turn", "", "TURN server URL")
	matchCmd.Flags().StringVar(&flagTURNUser, "turn-user", "", "TURN username")
	matchCmd.Flags().StringVar(&flagTURNPass, "turn-pass", "", "TURN password")
	matchCmd.Flags().BoolVar(&flagRelayChat, "relay-chat", false, "always send chat through the relay, never the data channel")

	rootCmd.AddCommand(matchCmd)
}

// session is the CLI-side view of one pairing.
type session struct {
	roomID    string
	partnerID string
	peer      *peer.Peer
	announced bool
}

func runMatch() error {
	cfg := config.LoadClient(config.Options{
		Server:     flagServer,
		STUNServer: flagSTUN,
		TURNServer: flagTURN,
		TURNUser:   flagTURNUser,
		TURNPass:   flagTURNPass,
	})

	stopSpinner := ui.RunConnectionSpinner("Connecting to " + cfg.Server + "...")
	client := signaling.NewClient(cfg.WebSocketURL)
	if err := client.Connect(); err != nil {
		stopSpinner()
		return err
	}
	defer client.Close()

	handler := signaling.NewHandler(client)
	go handler.Start()

	var ownID string
	select {
	case ownID = <-handler.Connected:
	case <-handler.Dropped:
		stopSpinner()
		return fmt.Errorf("relay closed the connection")
	case <-time.After(connectTimeout):
		stopSpinner()
		return fmt.Errorf("timed out waiting for the relay to assign an id")
	}
	stopSpinner()
	ui.PrintSuccess("Connected as " + ownID)

	lines := readLines()

	client.SendMessage(&signaling.Message{Type: signaling.MessageTypeJoinRoom, Label: flagLabel})
	stopSpinner = ui.RunSearchSpinner("Searching for a partner...")
	searching := true

	var current *session
	var rejoinCh <-chan time.Time

	for {
		// Peer channels are nil while unmatched; a nil channel never
		// fires in the select below.
		var peerIncoming chan peer.Frame
		var peerOpened chan struct{}
		var peerDone chan struct{}
		if current != nil && current.peer != nil {
			peerIncoming = current.peer.Incoming
			peerDone = current.peer.Done
			if !current.announced {
				peerOpened = current.peer.Opened
			}
		}

		select {
		case match := <-handler.MatchFound:
			if searching {
				stopSpinner()
				searching = false
			}
			current = startSession(cfg, client, ownID, match)

		case payload := <-handler.Signal:
			if current == nil || current.peer == nil {
				continue
			}
			if err := current.peer.HandleSignal(payload); err != nil {
				slog.Debug("signal handling failed", "err", err)
			}

		case text := <-handler.Chat:
			ui.PrintPartnerChat("partner", text)

		case <-handler.PartnerLeft:
			ui.PrintSystem("Your partner left. Searching again shortly...")
			current = endSession(current)
			rejoinCh = time.After(rejoinDelay)

		case <-peerOpened:
			ui.PrintSystem("Direct channel open. Chat is now peer-to-peer.")
			current.announced = true

		case frame := <-peerIncoming:
			from := frame.Label
			if from == "" {
				from = "partner"
			}
			ui.PrintPartnerChat(from, frame.Text)

		case <-peerDone:
			// Keep the session; chat falls back to the relay.
			ui.PrintSystem("Direct channel lost; chatting through the relay.")
			current.peer.Close()
			current.peer = nil

		case <-rejoinCh:
			rejoinCh = nil
			client.SendMessage(&signaling.Message{Type: signaling.MessageTypeJoinRoom, Label: flagLabel})
			stopSpinner = ui.RunSearchSpinner("Searching for a partner...")
			searching = true

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			switch strings.TrimSpace(line) {
			case "":
				continue
			case "/quit":
				return nil
			case "/skip":
				// Skipping mid-search also leaves the pool, so stop
				// the spinner before the rejoin restarts it.
				if searching {
					stopSpinner()
					searching = false
				}
				client.SendMessage(&signaling.Message{Type: signaling.MessageTypeSkipPartner})
				current = endSession(current)
				ui.PrintSystem("Skipped. Searching again shortly...")
				rejoinCh = time.After(rejoinDelay)
			default:
				sendChat(client, current, line)
			}

		case <-handler.Dropped:
			if searching {
				stopSpinner()
			}
			return fmt.Errorf("lost connection to the relay")
		}
	}
}

// startSession reacts to a match: prints the pairing, creates the peer
// connection and, on the initiating side, kicks off negotiation.
func startSession(cfg *config.Client, client *signaling.Client, ownID string, match *signaling.MatchInfo) *session {
	initiator := peer.Initiates(ownID, match.PartnerID)
	ui.DisplayMatchTable(match.RoomID, ownID, match.PartnerID, initiator)

	sendSignal := func(payload *signaling.SignalPayload) {
		raw, err := json.Marshal(payload)
		if err != nil {
			return
		}
		client.SendMessage(&signaling.Message{
			Type:   signaling.MessageTypeSignal,
			Room:   match.RoomID,
			Signal: raw,
		})
	}

	p, err := peer.New(cfg, initiator, sendSignal)
	if err != nil {
		// Relay chat still works without a peer connection.
		slog.Warn("peer connection unavailable", "err", err)
		ui.PrintSystem("Direct channel unavailable; chatting through the relay.")
		return &session{roomID: match.RoomID, partnerID: match.PartnerID}
	}

	if err := p.Start(); err != nil {
		slog.Warn("negotiation failed to start", "err", err)
		p.Close()
		return &session{roomID: match.RoomID, partnerID: match.PartnerID}
	}

	ui.PrintSystem("Matched. Say hi!")
	return &session{roomID: match.RoomID, partnerID: match.PartnerID, peer: p}
}

func endSession(s *session) *session {
	if s != nil && s.peer != nil {
		s.peer.Close()
	}
	return nil
}

// sendChat prefers the data channel and falls back to the relay.
func sendChat(client *signaling.Client, s *session, text string) {
	if s == nil {
		ui.PrintSystem("Not matched yet.")
		return
	}

	if !flagRelayChat && s.peer != nil && s.peer.Ready() {
		if err := s.peer.SendChat(flagLabel, text); err == nil {
			ui.PrintSelfChat(text)
			return
		}
	}

	client.SendMessage(&signaling.Message{
		Type: signaling.MessageTypeSendMessage,
		Room: s.roomID,
		Text: text,
	})
	ui.PrintSelfChat(text)
}

func readLines() chan string {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()
	return lines
}
