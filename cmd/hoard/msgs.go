package main

// Short/long descriptions for every command, kept together in one file.
const (
	msgRootShort = "A checksum-verified file backup tool"
	msgRootLong  = `hoard backs up files and directories ("piles") into a per-environment
tree on disk, then restores them, while detecting remote and
out-of-band changes before it ever overwrites anything.`

	msgBackupShort = "Back up one or more hoards"
	msgBackupLong  = `Backup copies every pile of the named hoards from their resolved
system paths into the hoard tree, after checking for remote operations
and unexpected changes. With no names, every configured hoard runs.`

	msgRestoreShort = "Restore one or more hoards"
	msgRestoreLong  = `Restore copies every pile of the named hoards from the hoard tree back
to their resolved system paths, after the same checks backup runs.
With no names, every configured hoard runs.`

	msgValidateShort = "Validate the config file without touching any hoard"
	msgStatusShort   = "Show each hoard's drift classification"
	msgDiffShort     = "Show per-file differences for one hoard"
	msgListShort     = "List configured hoards and their piles"
	msgEditShort     = "Open the config file in $EDITOR"
	msgInitShort     = "Write a default config file"
	msgCleanupShort  = "Remove superseded operation log files"
	msgUpgradeShort  = "Rewrite v1 operation logs to the current schema"

	msgFlagForce      = "skip the consistency checks (still journals the result)"
	msgFlagConfigFile = "path to the config file"
	msgFlagHoardsRoot = "path to the data directory (hoard tree and history)"
	msgFlagVerbose    = "diff output includes unchanged and per-file detail"
)
