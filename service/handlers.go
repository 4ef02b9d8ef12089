package service

import (
	"net/http"

	"github.com/artkachenko/wenmoon"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Service) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/coins", s.handleCoins)
		r.Get("/alerts", s.handleAlerts)
		r.Get("/transactions", s.handleTransactions)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/alerts/sync", s.handleAlertSync)
	})
	return r
}

type changeResponse struct {
	Value   wenmoon.Money   `json:"value"`
	Percent wenmoon.Percent `json:"percent"`
}

type holdingResponse struct {
	CoinID  string           `json:"coin"`
	Holding wenmoon.Quantity `json:"holding"`
	Value   wenmoon.Money    `json:"value"`
}

type summaryResponse struct {
	Portfolio string            `json:"portfolio"`
	Total     wenmoon.Money     `json:"total"`
	Intraday  changeResponse    `json:"intraday"`
	AllTime   changeResponse    `json:"allTime"`
	Holdings  []holdingResponse `json:"holdings"`
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	v := s.eng.Valuation()

	resp := summaryResponse{
		Portfolio: s.eng.SelectedPortfolio().Name(),
		Total:     v.Total,
		Intraday:  changeResponse{Value: v.Intraday.Value, Percent: v.Intraday.Percent},
		AllTime:   changeResponse{Value: v.AllTime.Value, Percent: v.AllTime.Percent},
		Holdings:  []holdingResponse{},
	}
	for _, g := range v.Groups {
		resp.Holdings = append(resp.Holdings, holdingResponse{
			CoinID:  g.CoinID,
			Holding: g.Holding,
			Value:   g.Value,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type coinsResponse struct {
	Pinned   []*wenmoon.Coin `json:"pinned"`
	Unpinned []*wenmoon.Coin `json:"unpinned"`
	Archived []*wenmoon.Coin `json:"archived"`
}

func (s *Service) handleCoins(w http.ResponseWriter, r *http.Request) {
	pinned, unpinned, archived := s.eng.CoinGroups()
	s.writeJSON(w, http.StatusOK, coinsResponse{
		Pinned:   orEmpty(pinned),
		Unpinned: orEmpty(unpinned),
		Archived: orEmpty(archived),
	})
}

func (s *Service) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := []wenmoon.PriceAlert{}
	for _, c := range s.eng.AllCoins() {
		alerts = append(alerts, c.Alerts...)
	}
	s.writeJSON(w, http.StatusOK, alerts)
}

func (s *Service) handleTransactions(w http.ResponseWriter, r *http.Request) {
	groups := s.eng.GroupedTransactions()
	s.writeJSON(w, http.StatusOK, groups)
}

func (s *Service) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.RefreshMarketData(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.handleCoins(w, r)
}

func (s *Service) handleAlertSync(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.SyncAlerts(r.Context(), s.cfg.AuthToken); err != nil {
		s.writeError(w, err)
		return
	}
	s.handleAlerts(w, r)
}

func orEmpty(coins []*wenmoon.Coin) []*wenmoon.Coin {
	if coins == nil {
		return []*wenmoon.Coin{}
	}
	return coins
}
