// Command uno-client is a line-oriented client for the UNO server, mainly
// useful for exercising a server by hand.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/callout-games/uno-server/sdk"
)

var CLI struct {
	Server   string `short:"s" long:"server" default:"http://localhost:8080" help:"Server URL to connect to"`
	Name     string `short:"n" long:"name" help:"Player name"`
	LogLevel string `short:"l" long:"log-level" default:"warn" help:"Log level"`
}

func main() {
	ctx := kong.Parse(&CLI)

	name := CLI.Name
	if name == "" {
		fmt.Print("Enter your player name: ")
		var input string
		_, _ = fmt.Scanln(&input)
		name = strings.TrimSpace(input)
		if name == "" {
			fmt.Println("Player name is required")
			ctx.Exit(1)
		}
	}

	logger := log.New(os.Stderr)
	if CLI.LogLevel == "debug" {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	client := sdk.NewClient(CLI.Server, logger)
	registerPrinters(client)

	if err := client.Connect(); err != nil {
		fmt.Printf("Failed to connect to server: %v\n", err)
		ctx.Exit(1)
	}
	defer func() { _ = client.Disconnect() }()

	if err := client.SetName(name); err != nil {
		fmt.Printf("Failed to send name: %v\n", err)
		ctx.Exit(1)
	}

	fmt.Println("Commands: create, join CODE, leave, list, start, play ID [COLOR], draw, declare, catch PLAYER, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "create":
			err = client.CreateRoom()
		case "join":
			if len(fields) < 2 {
				fmt.Println("usage: join CODE")
				continue
			}
			err = client.JoinRoom(strings.ToUpper(fields[1]))
		case "leave":
			err = client.LeaveRoom()
		case "list":
			err = client.ListRooms()
		case "start":
			err = client.StartGame()
		case "play":
			if len(fields) < 2 {
				fmt.Println("usage: play ID [COLOR]")
				continue
			}
			var cardID int
			cardID, err = strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("card ID must be a number")
				continue
			}
			var color *string
			if len(fields) > 2 {
				c := strings.ToLower(fields[2])
				color = &c
			}
			err = client.PlayCard(cardID, color)
		case "draw":
			err = client.DrawCard()
		case "declare":
			err = client.Declare()
		case "catch":
			if len(fields) < 2 {
				fmt.Println("usage: catch PLAYER")
				continue
			}
			err = client.Catch(fields[1])
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command: %s\n", fields[0])
			continue
		}

		if err != nil {
			fmt.Printf("Failed to send: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		fmt.Printf("Input error: %v\n", err)
	}
}

// registerPrinters wires every server message to a one-line summary on stdout
func registerPrinters(client *sdk.Client) {
	client.AddEventHandler(sdk.MessageTypeWelcome, func(msg *sdk.Message) {
		var d sdk.WelcomeData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* connected as %s (%s)\n", d.Name, d.PlayerID)
		}
	})
	client.AddEventHandler(sdk.MessageTypeError, func(msg *sdk.Message) {
		var d sdk.ErrorData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("! %s: %s\n", d.Code, d.Message)
		}
	})
	client.AddEventHandler(sdk.MessageTypeRoomCreated, func(msg *sdk.Message) {
		var d sdk.RoomCreatedData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* room %s created, share the code to invite players\n", d.Code)
		}
	})
	client.AddEventHandler(sdk.MessageTypeRoomJoined, func(msg *sdk.Message) {
		var d sdk.RoomJoinedData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* joined room %s with %d players\n", d.Code, len(d.Snapshot.Players))
		}
	})
	client.AddEventHandler(sdk.MessageTypeRoomLeft, func(msg *sdk.Message) {
		var d sdk.RoomLeftData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* left room %s\n", d.Code)
		}
	})
	client.AddEventHandler(sdk.MessageTypeRoomList, func(msg *sdk.Message) {
		var d sdk.RoomListData
		if json.Unmarshal(msg.Data, &d) != nil {
			return
		}
		if len(d.Rooms) == 0 {
			fmt.Println("* no open rooms")
			return
		}
		for _, room := range d.Rooms {
			fmt.Printf("* room %s (%d/%d players)\n", room.Code, room.PlayerCount, room.MaxPlayers)
		}
	})
	client.AddEventHandler(sdk.MessageTypePlayerJoined, func(msg *sdk.Message) {
		var d sdk.PlayerJoinedData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* %s joined\n", d.Player.Name)
		}
	})
	client.AddEventHandler(sdk.MessageTypePlayerLeft, func(msg *sdk.Message) {
		var d sdk.PlayerLeftData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* %s left\n", d.PlayerName)
		}
	})
	client.AddEventHandler(sdk.MessageTypeGameStarted, func(msg *sdk.Message) {
		var d sdk.GameStartedData
		if json.Unmarshal(msg.Data, &d) != nil {
			return
		}
		fmt.Printf("* game started, top card %s, %s to act\n",
			cardString(d.Snapshot.TopCard), currentName(d.Snapshot))
		printHand(d.Hand)
	})
	client.AddEventHandler(sdk.MessageTypeCardPlayed, func(msg *sdk.Message) {
		var d sdk.CardPlayedData
		if json.Unmarshal(msg.Data, &d) != nil {
			return
		}
		fmt.Printf("* %s played %s, %s to act\n",
			playerName(d.Snapshot, d.PlayerID), cardString(&d.Card), currentName(d.Snapshot))
	})
	client.AddEventHandler(sdk.MessageTypeCardsDrawn, func(msg *sdk.Message) {
		var d sdk.CardsDrawnData
		if json.Unmarshal(msg.Data, &d) != nil {
			return
		}
		fmt.Printf("* %s drew %d (%s), %s to act\n",
			playerName(d.Snapshot, d.PlayerID), d.Count, d.Reason, currentName(d.Snapshot))
	})
	client.AddEventHandler(sdk.MessageTypeHandUpdate, func(msg *sdk.Message) {
		var d sdk.HandUpdateData
		if json.Unmarshal(msg.Data, &d) == nil {
			printHand(d.Hand)
		}
	})
	client.AddEventHandler(sdk.MessageTypeVulnerable, func(msg *sdk.Message) {
		var d sdk.VulnerableData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* %s is down to one card and has %ds to declare!\n",
				playerName(d.Snapshot, d.PlayerID), d.WindowSeconds)
		}
	})
	client.AddEventHandler(sdk.MessageTypeDeclared, func(msg *sdk.Message) {
		var d sdk.DeclaredData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* %s declared\n", playerName(d.Snapshot, d.PlayerID))
		}
	})
	client.AddEventHandler(sdk.MessageTypeCaught, func(msg *sdk.Message) {
		var d sdk.CaughtData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* %s caught %s, penalty %d cards\n",
				playerName(d.Snapshot, d.CatcherID), playerName(d.Snapshot, d.TargetID), d.Penalty)
		}
	})
	client.AddEventHandler(sdk.MessageTypeWindowExpired, func(msg *sdk.Message) {
		var d sdk.WindowExpiredData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* %s got away without declaring\n", playerName(d.Snapshot, d.PlayerID))
		}
	})
	client.AddEventHandler(sdk.MessageTypeGameOver, func(msg *sdk.Message) {
		var d sdk.GameOverData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* game over, %s wins!\n", d.WinnerName)
		}
	})
	client.AddEventHandler(sdk.MessageTypeGameCancelled, func(msg *sdk.Message) {
		var d sdk.GameCancelledData
		if json.Unmarshal(msg.Data, &d) == nil {
			fmt.Printf("* game cancelled: %s\n", d.Reason)
		}
	})
}

func printHand(hand []sdk.Card) {
	parts := make([]string, 0, len(hand))
	for _, c := range hand {
		parts = append(parts, fmt.Sprintf("[%d] %s", c.ID, cardString(&c)))
	}
	fmt.Printf("  hand: %s\n", strings.Join(parts, ", "))
}

func cardString(c *sdk.Card) string {
	if c == nil {
		return "?"
	}
	if c.Color == sdk.ColorWild {
		return c.Rank
	}
	return c.Color + " " + c.Rank
}

func playerName(snap sdk.Snapshot, playerID string) string {
	for _, p := range snap.Players {
		if p.ID == playerID {
			return p.Name
		}
	}
	return playerID
}

func currentName(snap sdk.Snapshot) string {
	if snap.CurrentPlayerID == "" {
		return "nobody"
	}
	return playerName(snap, snap.CurrentPlayerID)
}
