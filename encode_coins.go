package wenmoon

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// The coin set is JSONL too: one coin record per line, in display order.

// DecodeCoins reads the tracked-coin records from a JSONL stream.
func DecodeCoins(r io.Reader) ([]*Coin, error) {
	scanner := bufio.NewScanner(r)
	var coins []*Coin
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var coin Coin
		if err := json.Unmarshal(line, &coin); err != nil {
			return nil, fmt.Errorf("could not decode coin %q: %w", string(line), err)
		}
		if coin.ID == "" {
			return nil, fmt.Errorf("coin record %q has no id", string(line))
		}
		if _, err := ParseLifecycleState(string(coin.State)); err != nil {
			return nil, err
		}
		coins = append(coins, &coin)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading coins: %w", err)
	}
	return coins, nil
}

// EncodeCoins writes every coin record as one JSONL line, in the order
// given.
func EncodeCoins(w io.Writer, coins []*Coin) error {
	for _, coin := range coins {
		data, err := json.Marshal(coin)
		if err != nil {
			return fmt.Errorf("failed to marshal coin %q: %w", coin.ID, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write coin %q: %w", coin.ID, err)
		}
	}
	return nil
}
