/*
Package domain contains the core domain models for the Fabula engine.

It defines the parsed story document (chapters, branches, body items), the
render model handed to hosts, the session snapshot used by stores, and the
error taxonomy shared by the parser and the runtime. This package is kept
pure and free of I/O or persistence concerns.

# Key Entities

  - Document: the parsed story (metadata, initial assignments, chapters).
  - Branch: one narrative unit with an ordered body of paragraphs,
    state actions and choices.
  - RenderModel: what the host shows for the current branch.
  - Snapshot: the serializable state of one playback session.
*/
package domain
