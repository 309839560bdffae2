package utils

import (
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
)

func AdminIDs() []int64 {
	admins := viper.GetIntSlice("bot.admin-ids")
	ids := make([]int64, len(admins))
	for i, v := range admins {
		ids[i] = int64(v)
	}
	return ids
}

// GetMessageText returns the text of a message or the caption of a media message.
func GetMessageText(msg *tele.Message) string {
	switch {
	case msg.Text != "":
		return msg.Text
	case msg.Caption != "":
		return msg.Caption
	default:
		return ""
	}
}
