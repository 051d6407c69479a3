// Package websocket pushes live game updates to spectators.
//
// A Hub keeps, per game, the set of connected spectators. Clients connect
// with the game identifier in the query string (?partie=<id>) and receive a
// JSON Message every time a move is accepted on that game:
//
//	{"id": "<game>", "event": "state_update", "état": {...}}
//
// The last message of a finished game has event "game_over" and names the
// winner in "gagnant". Spectators never send commands; anything they write
// is read and discarded so pings, pongs and close frames keep flowing.
//
// The hub's maps are owned by its Run loop; registration, removal and
// broadcasts all travel through channels. Slow spectators whose buffer is
// full are disconnected rather than allowed to stall the game.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("partie"))
//	})
//	hub.BroadcastState(id, state, "")
package websocket
