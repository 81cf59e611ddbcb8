// Package mindchat is an SDK for building "inner voices" chat apps: a
// user answers a short onboarding questionnaire, a generation step
// personalizes eight archetypal voices for them, and every message the
// user sends is answered by a staged batch of voice replies.
//
// The core pieces:
//
//   - trait: the deterministic questionnaire engine that maps ten
//     forced-choice answers to a four-letter trait code.
//   - OnboardingFlow: the step machine that collects the questionnaire
//     and taste data into an OnboardingData.
//   - ConversationSession: the bounded, persisted chat state machine
//     with per-message quota and staged batch reveal.
//   - ResponseProvider: the pluggable generation backend. An Anthropic
//     Messages API implementation and an offline mock ship in the box;
//     CachedProfileProvider adds profile caching on any of them.
//   - PersistenceStore: the pluggable snapshot store. In-memory here,
//     file/Redis/SQLite backends in the store subpackage.
//
// Minimal usage:
//
//	cfg := mindchat.DefaultSessionConfig()
//	session := mindchat.NewConversationSession(cfg, mindchat.NewMockProvider(), mindchat.NewInMemoryStore())
//
//	_ = session.StartSession(ctx, data)
//	turn, _ := session.Submit("should I text them back?")
//	turn.Wait()
//	for _, m := range session.Messages() {
//		fmt.Println(m.Text)
//	}
package mindchat
