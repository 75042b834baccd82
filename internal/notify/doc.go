// Package notify relays moderation activity from the service event hub to
// external channels. The only channel today is a Discord webhook, posted with
// github.com/gtuk/discordwebhook.
package notify
