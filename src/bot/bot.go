// Package bot is the Discord front-end: "!query <question>" runs the same
// pipeline as the HTTP API and replies in the channel.
package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/stake-plus/polkaquery/src/agent/engine"
)

const commandPrefix = "!query"

// Discord caps message bodies at 2000 characters.
const maxDiscordMessage = 2000

type Bot struct {
	session        *discordgo.Session
	eng            *engine.Engine
	defaultNetwork string
}

func New(token string, eng *engine.Engine, defaultNetwork string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	b := &Bot{session: session, eng: eng, defaultNetwork: defaultNetwork}
	b.initHandlers()
	return b, nil
}

func (b *Bot) initHandlers() {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("bot: logged in as %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})

	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author.ID == s.State.User.ID {
			return
		}
		if text, ok := queryText(m.Content); ok {
			b.handleQuery(s, m, text)
		}
	})
}

// queryText extracts the question from a command message. The prefix must
// be the whole message or followed by a space, so "!queryfoo" is not a
// command.
func queryText(content string) (string, bool) {
	content = strings.TrimSpace(content)
	if content == commandPrefix {
		return "", true
	}
	rest, ok := strings.CutPrefix(content, commandPrefix+" ")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// handleQuery accepts "!query [network] <question>"; the first word is
// treated as a network name when it matches one.
func (b *Bot) handleQuery(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if text == "" {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!query [network] <question>`")
		return
	}

	networkName := b.defaultNetwork
	if first, rest, found := strings.Cut(text, " "); found {
		if _, ok := b.eng.Networks().Get(first); ok {
			networkName = first
			text = strings.TrimSpace(rest)
		}
	}

	net, ok := b.eng.Networks().Get(networkName)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Unknown network %q. Supported: %s",
			networkName, strings.Join(b.eng.Networks().Names(), ", ")))
		return
	}

	s.ChannelTyping(m.ChannelID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		st := b.eng.Run(ctx, text, net)
		answer := st.Answer
		if len(answer) > maxDiscordMessage {
			answer = answer[:maxDiscordMessage-3] + "..."
		}
		if _, err := s.ChannelMessageSend(m.ChannelID, answer); err != nil {
			log.Printf("bot: send reply: %v", err)
		}
	}()
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

func (b *Bot) Stop() {
	if b.session != nil {
		b.session.Close()
	}
}
