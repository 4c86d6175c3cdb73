package usecase

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	bCtx "github.com/x-xyz/metagen/base/ctx"
)

type fakeSender struct {
	sent []string
	err  error
}

func (s *fakeSender) ChannelMessageSend(channelID string, content string) (*discordgo.Message, error) {
	s.sent = append(s.sent, channelID+": "+content)
	if s.err != nil {
		return nil, s.err
	}
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func TestDiscordProgressReporter_Report(t *testing.T) {
	tests := []struct {
		name  string
		every int
		msgs  []string
		want  []string
	}{
		{
			name:  "every message",
			every: 0,
			msgs:  []string{"a", "b"},
			want:  []string{"chan: a", "chan: b"},
		},
		{
			name:  "first and every third",
			every: 3,
			msgs:  []string{"a", "b", "c", "d", "e", "f", "g"},
			want:  []string{"chan: a", "chan: c", "chan: f"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			sender := &fakeSender{}
			r := NewDiscordProgressReporter(&DiscordProgressReporterCfg{Sender: sender, ChannelId: "chan", Every: tt.every})
			for _, msg := range tt.msgs {
				r.Report(bCtx.Background(), msg)
			}
			req.Equal(tt.want, sender.sent)
		})
	}
}

func TestDiscordProgressReporter_ReportSendError(t *testing.T) {
	req := require.New(t)
	sender := &fakeSender{err: errors.New("401 unauthorized")}
	r := NewDiscordProgressReporter(&DiscordProgressReporterCfg{Sender: sender, ChannelId: "chan"})

	req.NotPanics(func() {
		r.Report(bCtx.Background(), "Generating assets folder...")
		r.Report(bCtx.Background(), "Generating asset metadata 'assets/0.json'")
	})
	req.Len(sender.sent, 2)
}
