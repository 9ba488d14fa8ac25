/*
Package domain contains the core domain models of the kawiarnia ordering engine.

It defines the entities a conversation is made of and keeps them free of I/O,
persistence and oracle concerns. Every type here is a value: operations return
a new value instead of mutating the receiver, so processing stages can be
composed and tested in isolation.

# Key Entities

  - Session: the whole state of one conversation (validity, intent, history, cart, order, metrics, log).
  - WorkingOrder: the order being assembled across turns (drink, size, customization and substitution sets).
  - Cart / CartItem: committed, priced order lines. Cart.Total always equals the sum of item prices.
  - Metrics: orders completed and revenue; carried across resets.
  - ActivityLog: a bounded, ordered audit trail.
  - Intent: the closed set of customer intents.
*/
package domain
