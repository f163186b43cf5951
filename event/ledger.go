// Copyright 2025 Menagerie Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package event

// Ledger event types. Every mutation publishes exactly the events its
// operation describes; liquidation publishes a withdrawal event and a
// liquidation event.
const (
	CollectionNominatedEventType   = EventType("collection.nominated")
	CollectionAdmittedEventType    = EventType("collection.admitted")
	CollectionListedEventType      = EventType("collection.listed")
	CollectionDelistedEventType    = EventType("collection.delisted")
	VotedForCollectionEventType    = EventType("collection.voted")
	VoteProlongedEventType         = EventType("collection.vote_prolonged")
	AssetStakedEventType           = EventType("staking.staked")
	AssetUnstakedEventType         = EventType("staking.unstaked")
	VotingPositionCreatedEventType = EventType("voting.position_created")
	DaiWithdrawnEventType          = EventType("voting.dai_withdrawn")
	PositionLiquidatedEventType    = EventType("voting.position_liquidated")
	EpochSettledEventType          = EventType("epoch.settled")
)

// CollectionNominatedEvent is emitted when a collection is registered for voting
type CollectionNominatedEvent struct {
	Collection       string `json:"collection"`
	RoyaltyRecipient string `json:"royaltyRecipient"`
	Epoch            uint64 `json:"epoch"`
}

// CollectionAdmittedEvent is emitted when a collection is listed administratively
type CollectionAdmittedEvent struct {
	Collection       string `json:"collection"`
	RoyaltyRecipient string `json:"royaltyRecipient"`
	Epoch            uint64 `json:"epoch"`
}

// CollectionListedEvent is emitted when cumulative vote weight crosses
// the listing threshold
type CollectionListedEvent struct {
	Collection   string `json:"collection"`
	ActiveWeight string `json:"activeWeight"`
	Epoch        uint64 `json:"epoch"`
}

// CollectionDelistedEvent is emitted at an epoch boundary when a listed
// collection's active vote weight has lapsed
type CollectionDelistedEvent struct {
	Collection string `json:"collection"`
	Epoch      uint64 `json:"epoch"`
}

// VotedForCollectionEvent is emitted for each new vote entry
type VotedForCollectionEvent struct {
	Voter       string `json:"voter"`
	Collection  string `json:"collection"`
	Weight      string `json:"weight"`
	VoteEntryID uint   `json:"voteEntryId"`
	StartEpoch  uint64 `json:"startEpoch"`
	EndEpoch    uint64 `json:"endEpoch"`
}

// VoteProlongedEvent is emitted when a vote entry's expiry is extended
type VoteProlongedEvent struct {
	Voter       string `json:"voter"`
	VoteEntryID uint   `json:"voteEntryId"`
	OldEndEpoch uint64 `json:"oldEndEpoch"`
	NewEndEpoch uint64 `json:"newEndEpoch"`
}

// AssetStakedEvent is emitted when an asset enters escrow
type AssetStakedEvent struct {
	Owner             string `json:"owner"`
	Collection        string `json:"collection"`
	TokenID           uint64 `json:"tokenId"`
	StakingPositionID uint   `json:"stakingPositionId"`
	Epoch             uint64 `json:"epoch"`
}

// AssetUnstakedEvent is emitted when an asset leaves escrow
type AssetUnstakedEvent struct {
	Owner             string `json:"owner"`
	Collection        string `json:"collection"`
	TokenID           uint64 `json:"tokenId"`
	StakingPositionID uint   `json:"stakingPositionId"`
	Epoch             uint64 `json:"epoch"`
}

// VotingPositionCreatedEvent is emitted when a deposit backs a staked asset
type VotingPositionCreatedEvent struct {
	Owner             string `json:"owner"`
	DaiAmount         string `json:"daiAmount"`
	ZooAmount         string `json:"zooAmount"`
	VaultShares       string `json:"vaultShares"`
	VotingPositionID  uint   `json:"votingPositionId"`
	StakingPositionID uint   `json:"stakingPositionId"`
	Epoch             uint64 `json:"epoch"`
}

// DaiWithdrawnEvent is emitted on every withdrawal, partial or full
type DaiWithdrawnEvent struct {
	Beneficiary      string `json:"beneficiary"`
	DaiAmount        string `json:"daiAmount"`
	ZooReleased      string `json:"zooReleased"`
	VotingPositionID uint   `json:"votingPositionId"`
	Epoch            uint64 `json:"epoch"`
}

// PositionLiquidatedEvent is emitted in addition to the withdrawal
// event when a full-or-excess withdrawal closes a position
type PositionLiquidatedEvent struct {
	Beneficiary      string `json:"beneficiary"`
	YieldFlushed     string `json:"yieldFlushed"`
	ZooReturned      string `json:"zooReturned"`
	VotingPositionID uint   `json:"votingPositionId"`
	Epoch            uint64 `json:"epoch"`
}

// EpochSettledEvent is emitted once per epoch by the catch-up step
type EpochSettledEvent struct {
	Epoch         uint64 `json:"epoch"`
	ListedCount   uint   `json:"listedCount"`
	DelistedCount uint   `json:"delistedCount"`
}
