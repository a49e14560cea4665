package bot

import "github.com/bwmarrin/discordgo"

func commandDefs() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "card",
			Description: "Show a pokemon card",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Pokemon name",
					Required:    true,
				},
			},
		},
		{
			Name:        "battle",
			Description: "Pit two pokemon against each other",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "first",
					Description: "First pokemon",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "second",
					Description: "Second pokemon",
					Required:    true,
				},
			},
		},
		{Name: "dex", Description: "Catalog summary and battle leaders"},
	}
}
