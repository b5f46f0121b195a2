package game

// SeatingOrder returns player ids starting immediately after the dealer and
// wrapping around the table. If the dealer is not seated the natural
// insertion order is returned.
func SeatingOrder(players []*Player, dealerID string) []string {
	order := make([]string, 0, len(players))
	dealerIdx := -1
	for i, p := range players {
		if p.ID == dealerID {
			dealerIdx = i
			break
		}
	}
	if dealerIdx == -1 {
		for _, p := range players {
			order = append(order, p.ID)
		}
		return order
	}
	for i := 1; i <= len(players); i++ {
		order = append(order, players[(dealerIdx+i)%len(players)].ID)
	}
	return order
}

// Eligible filters an order down to the players that can still act:
// in the hand, not folded, chips behind.
func Eligible(players []*Player, order []string) []string {
	eligible := make([]string, 0, len(order))
	for _, id := range order {
		for _, p := range players {
			if p.ID == id && p.canAct() {
				eligible = append(eligible, id)
				break
			}
		}
	}
	return eligible
}

// playersInHand returns the players dealt into the hand that have not
// folded. All-in players stay in hand with zero chips behind.
func (t *Table) playersInHand() []*Player {
	inHand := make([]*Player, 0, len(t.Players))
	for _, p := range t.Players {
		if p.inHand() {
			inHand = append(inHand, p)
		}
	}
	return inHand
}

// nextEligibleAfter returns the first player after fromID in seating order
// that can still act, or "" when no one can.
func (t *Table) nextEligibleAfter(fromID string) string {
	order := SeatingOrder(t.Players, fromID)
	for _, id := range order {
		if id == fromID {
			continue
		}
		if p := t.Player(id); p != nil && p.canAct() {
			return id
		}
	}
	return ""
}
