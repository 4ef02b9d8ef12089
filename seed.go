package wenmoon

// StarterCoins returns the predefined coin set tracked on first launch,
// before the user has added anything. IDs are CoinGecko identifiers.
func StarterCoins() []*Coin {
	starters := []struct{ id, symbol, name string }{
		{"bitcoin", "BTC", "Bitcoin"},
		{"ethereum", "ETH", "Ethereum"},
		{"solana", "SOL", "Solana"},
		{"cardano", "ADA", "Cardano"},
		{"dogecoin", "DOGE", "Dogecoin"},
	}
	coins := make([]*Coin, 0, len(starters))
	for _, s := range starters {
		coins = append(coins, NewCoin(s.id, s.symbol, s.name))
	}
	return coins
}
