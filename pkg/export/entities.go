package export

// EntityKind declares one exported collection: its name (which is also the
// archive member basename), the ordered core fields that make up its fixed
// output columns, and whether its records carry the open data payload that
// is subject to schema discovery.
type EntityKind struct {
	Name    string
	Fields  []string
	HasData bool
}

// Kinds lists every exported entity kind in output order. The order is part
// of the archive contract: members appear in the archive exactly in this
// sequence.
var Kinds = []EntityKind{
	{
		Name: "factor-types",
		Fields: []string{
			"id", "name", "required", "description", "type",
			"min", "max", "createdAt", "archivedAt",
		},
	},
	{
		Name:   "factors",
		Fields: []string{"id", "name", "value", "factorTypeId", "createdAt"},
	},
	{
		Name:   "treatments",
		Fields: []string{"id", "name", "factorIds", "createdAt", "archivedAt"},
	},
	{
		Name: "lobby-configs",
		Fields: []string{
			"id", "name", "timeoutType", "timeoutInSeconds", "timeoutStrategy",
			"timeoutBots", "extendCount", "createdAt", "archivedAt",
		},
	},
	{
		Name: "batches",
		Fields: []string{
			"id", "assignment", "full", "runningAt", "finishedAt", "status",
			"gameIds", "gameLobbyIds", "createdAt", "archivedAt",
		},
	},
	{
		Name: "game-lobbies",
		Fields: []string{
			"id", "index", "availableCount", "timeoutStartedAt", "timedOutAt",
			"queuedPlayerIds", "playerIds", "gameId", "treatmentId", "batchId",
			"lobbyConfigId", "createdAt",
		},
	},
	{
		Name: "games",
		Fields: []string{
			"id", "finishedAt", "gameLobbyId", "treatmentId", "roundIds",
			"playerIds", "batchId", "createdAt",
		},
		HasData: true,
	},
	{
		Name: "players",
		Fields: []string{
			"id", "playerId", "urlParams", "bot", "readyAt", "timeoutStartedAt",
			"timeoutWaitCount", "exitStepsDone", "exitAt", "exitStatus",
			"retiredAt", "retiredReason", "createdAt",
		},
		HasData: true,
	},
	{
		Name:    "rounds",
		Fields:  []string{"id", "index", "stageIds", "gameId", "createdAt"},
		HasData: true,
	},
	{
		Name: "stages",
		Fields: []string{
			"id", "index", "name", "displayName", "startTimeAt",
			"durationInSeconds", "roundId", "gameId", "createdAt",
		},
		HasData: true,
	},
	{
		Name:    "player-rounds",
		Fields:  []string{"id", "batchId", "playerId", "roundId", "gameId", "createdAt"},
		HasData: true,
	},
	{
		Name: "player-stages",
		Fields: []string{
			"id", "batchId", "playerId", "stageId", "roundId", "gameId", "createdAt",
		},
		HasData: true,
	},
	{
		Name:    "player-inputs",
		Fields:  []string{"id", "playerId", "gameId", "createdAt"},
		HasData: true,
	},
}
