// PandaCare chat - terminal client for the real-time messaging session.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pandacare/internal/app/backend"
	"pandacare/internal/app/chat"
	"pandacare/internal/app/identity"
	"pandacare/internal/configs"
	"pandacare/internal/pkg/logx"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal client logs warnings only; messages own the screen.
	logx.InitGlobalLogger(false)

	store := identity.NewFileStore(os.Getenv("PANDACARE_CONFIG"))
	client := backend.NewClient(cfg.BackendOrigin)

	switch os.Args[1] {
	case "login":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: chat login <token>")
			os.Exit(1)
		}
		login(store, os.Args[2])

	case "logout":
		store.Clear()
		fmt.Println("Signed out.")

	case "whoami":
		whoami(store)

	case "rooms":
		listRooms(client, store)

	case "open":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: chat open <roomId> <recipientId> [recipientName]")
			os.Exit(1)
		}
		params := map[string]string{
			"roomId":      os.Args[2],
			"recipientId": os.Args[3],
		}
		if len(os.Args) > 4 {
			params["recipientName"] = os.Args[4]
		}
		openChat(cfg, store, params)

	case "start":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: chat start <pacilianId> <caregiverId>")
			os.Exit(1)
		}
		startChat(cfg, client, store, os.Args[2], os.Args[3])

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func login(store identity.Store, token string) {
	if identity.IsExpired(token) {
		fmt.Fprintln(os.Stderr, "That credential is expired or unreadable. Please sign in again.")
		os.Exit(1)
	}

	store.Set(token)

	id, _ := identity.Decode(token)
	fmt.Printf("Signed in as %s (%s)\n", id.ID, id.Role)
}

func whoami(store identity.Store) {
	token, ok := store.Get()
	if !ok {
		fmt.Println("Not signed in.")
		return
	}

	id, decErr := identity.Decode(token)
	if decErr != nil {
		fmt.Println("Signed in, but the credential payload is unreadable.")
		return
	}

	fmt.Printf("%s (%s)\n", id.ID, id.Role)
	if identity.IsExpired(token) {
		fmt.Println("The credential has expired. Run 'chat login' with a fresh token.")
	}
}

func listRooms(client *backend.Client, store identity.Store) {
	token, ok := store.Get()
	if !ok {
		fmt.Fprintln(os.Stderr, "Please sign in first: chat login <token>")
		os.Exit(1)
	}

	id, _ := identity.Decode(token)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var rooms []backend.RoomLookup
	var err error
	if id.Role == identity.RoleCaregiver {
		rooms, err = client.GetCaregiverChatRooms(ctx, token, id.ID)
	} else {
		rooms, err = client.GetPacilianChatRooms(ctx, token, id.ID)
	}
	exitOnError(err)

	if len(rooms) == 0 {
		fmt.Println("No chat rooms yet.")
		return
	}

	for _, room := range rooms {
		other := room.CaregiverID
		if id.Role == identity.RoleCaregiver {
			other = room.PacilianID
		}
		fmt.Printf("  %s  with %s\n", room.RoomID, other)
	}
}

// startChat resolves the room for the two participants, then opens it.
func startChat(cfg *configs.AppConfig, client *backend.Client, store identity.Store, pacilianID, caregiverID string) {
	token, ok := store.Get()
	if !ok {
		fmt.Fprintln(os.Stderr, "Please sign in first: chat login <token>")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	room, err := client.GetChatRoom(ctx, token, pacilianID, caregiverID)
	exitOnError(err)

	id, _ := identity.Decode(token)
	recipient := caregiverID
	if id.Role == identity.RoleCaregiver {
		recipient = pacilianID
	}

	openChat(cfg, store, map[string]string{
		"roomId":      room.RoomID,
		"recipientId": recipient,
	})
}

// openChat runs one interactive messaging session until EOF or interrupt.
func openChat(cfg *configs.AppConfig, store identity.Store, params map[string]string) {
	room, resolveErr := chat.ResolveRoomRef(params)
	if resolveErr != nil {
		fmt.Fprintln(os.Stderr, resolveErr.Message)
		os.Exit(1)
	}

	session := chat.NewSession(chat.NewWebsocketDialer(), cfg.MessagingEndpoint(), store)
	conversation := chat.NewConversation(session, room)

	printed := 0
	conversation.Watch(func(snap chat.Snapshot, grew bool) {
		switch snap.State {
		case chat.StateConnected:
			if grew {
				// Print only the tail; receipt order defines the sequence.
				if printed > len(snap.Messages) {
					printed = 0
				}
				for _, m := range snap.Messages[printed:] {
					prefix := conversation.RecipientLabel()
					if conversation.IsOwn(m) {
						prefix = "you"
					}
					fmt.Printf("[%s] %s: %s\n", m.Timestamp, prefix, m.Content)
				}
			}
			printed = len(snap.Messages)
		case chat.StateError:
			fmt.Fprintln(os.Stderr, snap.ErrorMessage)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Start(ctx, room); err != nil {
		fmt.Fprintln(os.Stderr, err.Message)
		os.Exit(1)
	}
	defer session.Stop()

	fmt.Printf("Chatting with %s in room %s. Type a message and press Enter; Ctrl-D to leave.\n",
		conversation.RecipientLabel(), room.RoomID)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nLeaving chat.")
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Println("Leaving chat.")
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := conversation.Submit(line); err != nil {
				fmt.Fprintln(os.Stderr, err.Message)
			}
		}
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`PandaCare chat client

Usage: chat <command> [args]

Commands:
  login <token>                        Store the bearer credential
  logout                               Remove the stored credential
  whoami                               Show the signed-in identity
  rooms                                List your chat rooms
  open <roomId> <recipientId> [name]   Open an existing room
  start <pacilianId> <caregiverId>     Resolve the room for two participants and open it
  help                                 Show this help

Environment:
  BACKEND_ORIGIN     Care backend base URL (default http://localhost:8080)
  PANDACARE_CONFIG   Credential directory (default ~/.pandacare)`)
}
