// Package session keeps the games hosted by the match server in memory.
//
// Manager implements service.SessionManager. Every game gets a random UUID
// as its identifier and its own engine, seeded from the opening state the
// service hands over. Lookups ignore case, since identifiers travel through
// URLs typed by people.
//
// The manager is safe for concurrent use. It guards its map with a
// read/write mutex; the engine inside each session is guarded by the
// session's own mutex, which the manager also takes when it touches the
// access timestamp.
//
// Games are not persisted. A restarted server starts empty, and
// CleanupExpiredSessions drops games nobody has touched for a while:
//
//	manager := session.NewManager()
//	sess, err := manager.Create("alice", "classic", engine.NewState("alice", "robot"))
//	if err != nil {
//		return err
//	}
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
