/*
Package ledger records votes and derives voter and slot status.

# Vote Recording

RecordVote runs all preconditions and writes inside one transaction:

	record, err := led.RecordVote(voterID, candidateID, meta)

Preconditions are checked in a fixed order: the voter must exist, must
not have voted, a slot must be active, the voter must belong to it, and
the candidate must stand in it. Each rejection is a sentinel error:

	ErrUnknownVoter
	ErrAlreadyVoted
	ErrNoActiveSlot
	ErrWrongSlot
	ErrUnknownCandidate

The voted flag is flipped with a conditional UPDATE guarded on
voted = FALSE, so two concurrent requests for the same voter can never
both succeed.

# Status Derivation

Status is never stored; it is computed from the voted flag and the
slot window:

	completed - the voter has voted (terminal)
	missed    - the slot window has closed without a vote
	pending   - everything else

# Slot Statistics

SlotStats tallies a slot's voters and voting candidates:

	stats, err := led.SlotStats(slotID)

Total, Completed, Missed, and Pending always satisfy
Total = Completed + Missed + Pending.
*/
package ledger
