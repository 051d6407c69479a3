// Package config loads the openings a hosted game may start from.
//
// An opening is a JSON file in the openings directory, holding a name, a
// description and a position in the match server's state format:
//
//	{
//	  "name": "Classic",
//	  "description": "Standard opening",
//	  "état": {
//	    "tour": 1,
//	    "joueurs": [
//	      {"nom": "joueur1", "murs": 10, "position": [5, 1]},
//	      {"nom": "joueur2", "murs": 10, "position": [5, 9]}
//	    ],
//	    "murs": {"horizontaux": [], "verticaux": []}
//	  }
//	}
//
// Player names in the file are placeholders; the service seats the real
// players when it creates a game. Every opening is checked with the same
// rules the engine applies to a state, so a file with overlapping walls,
// a wrong wall count or a pawn cut off from its goal is rejected.
//
// The opening identifier is the file name without its extension. The
// default opening is classic.json when present, else the first valid file,
// else the canonical starting position.
//
// Usage:
//
//	manager, err := config.NewManager("openings")
//	if err != nil {
//		log.Fatal().Err(err).Msg("cannot load openings")
//	}
//	opening, err := manager.LoadOpening("barricade")
package config
