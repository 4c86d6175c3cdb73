package usecase

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	"github.com/x-xyz/metagen/domain/metadata"
)

// DiscordSender is the part of *discordgo.Session the reporter needs.
type DiscordSender interface {
	ChannelMessageSend(channelID string, content string) (*discordgo.Message, error)
}

type DiscordProgressReporterCfg struct {
	Sender    DiscordSender
	ChannelId string
	// Every posts one message out of Every. The first message is always posted.
	Every int
}

type discordProgressReporter struct {
	sender    DiscordSender
	channelId string
	every     int

	mu    sync.Mutex
	count int
}

// NewDiscordProgressReporter logs every progress line and mirrors a sample of them to a discord channel.
// Failing to post never fails the run.
func NewDiscordProgressReporter(cfg *DiscordProgressReporterCfg) metadata.ProgressReporter {
	every := cfg.Every
	if every < 1 {
		every = 1
	}
	return &discordProgressReporter{
		sender:    cfg.Sender,
		channelId: cfg.ChannelId,
		every:     every,
	}
}

func (r *discordProgressReporter) Report(c bCtx.Ctx, msg string) {
	c.Info(msg)

	r.mu.Lock()
	r.count++
	n := r.count
	r.mu.Unlock()
	if n != 1 && n%r.every != 0 {
		return
	}

	if _, err := r.sender.ChannelMessageSend(r.channelId, msg); err != nil {
		c.WithFields(log.Fields{"channelId": r.channelId, "err": err}).Warn("discord.ChannelMessageSend failed")
	}
}
