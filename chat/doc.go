// Package chat connects the bot to Twitch chat.
//
// Bot joins the configured channels over IRC and watches every channel
// message. Messages that start with the command prefix and were not sent by
// the bot itself are handed to the command interpreter; the reply is written
// back to the channel the command came from, one chat line per reply line,
// since Twitch messages cannot contain newlines.
//
// Credentials: the IRC client requires a bot username and an OAuth token with
// chat:read/chat:edit scopes (TWITCH_BOT_USERNAME, TWITCH_OAUTH_TOKEN).
package chat
