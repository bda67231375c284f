package tool

// Builtins returns the full catalogue of MLB Stats API bindings. Game
// feed resources live under the v1.1 API; everything else is v1.
func Builtins() []Binding {
	return []Binding{
		{
			Name:        "get_live_game_data",
			Description: "Get the live game feed for a specific game",
			Base:        BaseV11,
			Path:        "/game/{game_pk}/feed/live",
			Params: []Param{
				{Name: "game_pk", Required: true, Description: "Unique identifier for the game"},
				{Name: "timecode", Description: "Timestamp in yyyymmdd_HHMMSS format for historical data"},
			},
		},
		{
			Name:        "get_season_schedule",
			Description: "Get the MLB schedule for a season or date",
			Base:        BaseV1,
			Path:        "/schedule",
			Params: []Param{
				{Name: "season", Required: true, Description: "Year of the season"},
				{Name: "game_type", Default: "R", QueryKey: "gameType", Description: "R=Regular Season, P=Postseason, S=Spring Training"},
				{Name: "sportId", Default: "1", Description: "Sport ID (1 for MLB)"},
				{Name: "date", Description: "Specific date in MM/DD/YYYY format"},
				{Name: "hydrate", Description: "Additional data to include, e.g. 'team,stats'"},
			},
		},
		{
			Name:        "get_team_roster",
			Description: "Get a team's roster for a season",
			Base:        BaseV1,
			Path:        "/teams/{team_id}/roster",
			Params: []Param{
				{Name: "team_id", Required: true, Description: "Unique identifier for the team, e.g. 119 for the Dodgers"},
				{Name: "season", Required: true, Description: "Year of the season"},
				{Name: "hydrate", Description: "Additional data to include, e.g. 'person,stats'"},
			},
		},
		{
			Name:        "get_team_info",
			Description: "Get detailed information about a team",
			Base:        BaseV1,
			Path:        "/teams/{team_id}",
			Params: []Param{
				{Name: "team_id", Required: true, Description: "Unique identifier for the team"},
				{Name: "season", Description: "Year to get team info for a specific season"},
			},
		},
		{
			Name:        "get_player_info",
			Description: "Get detailed information about a player",
			Base:        BaseV1,
			Path:        "/people/{player_id}",
			Params: []Param{
				{Name: "player_id", Required: true, Description: "Unique identifier for the player, e.g. 660271 for Shohei Ohtani"},
				{Name: "season", Description: "Year to get player info for a specific season"},
			},
		},
		{
			Name:        "get_game_boxscore",
			Description: "Get the boxscore for a specific game",
			Base:        BaseV11,
			Path:        "/game/{game_pk}/boxscore",
			Params: []Param{
				{Name: "game_pk", Required: true, Description: "Unique identifier for the game"},
				{Name: "timecode", Description: "Timestamp for historical data"},
			},
		},
		{
			Name:        "get_game_linescore",
			Description: "Get the linescore for a specific game",
			Base:        BaseV11,
			Path:        "/game/{game_pk}/linescore",
			Params: []Param{
				{Name: "game_pk", Required: true, Description: "Unique identifier for the game"},
				{Name: "timecode", Description: "Timestamp for historical data"},
			},
		},
		{
			Name:        "get_game_plays",
			Description: "Get play-by-play information for a specific game",
			Base:        BaseV11,
			Path:        "/game/{game_pk}/plays",
			Params: []Param{
				{Name: "game_pk", Required: true, Description: "Unique identifier for the game"},
				{Name: "timecode", Description: "Timestamp for historical data"},
				{Name: "inning", Description: "Specific inning to retrieve"},
				{Name: "top_bottom", QueryKey: "topBottom", Description: "'top' or 'bottom' of the inning"},
			},
		},
		{
			Name:        "get_player_stats",
			Description: "Get statistics for a specific player",
			Base:        BaseV1,
			Path:        "/people/{player_id}/stats",
			Params: []Param{
				{Name: "player_id", Required: true, Description: "Unique identifier for the player"},
				{Name: "season", Description: "Year to get stats for a specific season"},
				{Name: "group", Description: "Stat group: hitting, pitching, or fielding"},
				{Name: "game_type", Default: "R", QueryKey: "gameType", Description: "R=Regular Season, P=Postseason, S=Spring Training"},
			},
		},
		{
			Name:        "get_game_timestamps",
			Description: "Get the available feed timestamps for a specific game",
			Base:        BaseV11,
			Path:        "/game/{game_pk}/feed/live/timestamps",
			Params: []Param{
				{Name: "game_pk", Required: true, Description: "Unique identifier for the game"},
			},
		},
		{
			Name:        "get_game_decisions",
			Description: "Get game decisions (winning/losing pitcher, save) for a specific game",
			Base:        BaseV11,
			Path:        "/game/{game_pk}/decisions",
			Params: []Param{
				{Name: "game_pk", Required: true, Description: "Unique identifier for the game"},
			},
		},
		{
			Name:        "get_game_contextMetrics",
			Description: "Get advanced context metrics for a specific game",
			Base:        BaseV11,
			Path:        "/game/{game_pk}/contextMetrics",
			Params: []Param{
				{Name: "game_pk", Required: true, Description: "Unique identifier for the game"},
				{Name: "timecode", Description: "Timestamp for historical data"},
			},
		},
		{
			Name:        "get_game_winProbability",
			Description: "Get win probability metrics for a specific game",
			Base:        BaseV11,
			Path:        "/game/{game_pk}/winProbability",
			Params: []Param{
				{Name: "game_pk", Required: true, Description: "Unique identifier for the game"},
				{Name: "timecode", Description: "Timestamp for historical data"},
			},
		},
		{
			Name:        "search_player",
			Description: "Search for a player by name",
			Base:        BaseV1,
			Path:        "/people/search",
			Params: []Param{
				{Name: "name", Required: true, QueryKey: "names", Description: "Player name to search for"},
			},
		},
		{
			Name:        "search_teams",
			Description: "List all MLB teams or search for specific teams",
			Base:        BaseV1,
			Path:        "/teams",
			Params: []Param{
				{Name: "season", Description: "Year to get teams for a specific season"},
				{Name: "sportId", Default: "1", Description: "Sport ID (1 for MLB)"},
				{Name: "activeStatus", Description: "Filter active/inactive teams"},
			},
		},
	}
}
