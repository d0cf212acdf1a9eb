package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// doppler_auction_usecase_place_bid_error_total
	//
	// counter that measures the number of errors that occur during bid placement in auction usecase
	//
	// Has the following labels:
	// * owner - the address of the bidder
	// * level - the price level of the bid
	// * err - the error message occurred
	PlaceBidErrorMetricName = "doppler_auction_usecase_place_bid_error_total"

	// doppler_auction_usecase_remove_bid_error_total
	//
	// counter that measures the number of errors that occur during bid removal in auction usecase
	//
	// Has the following labels:
	// * position_id - the identifier of the position being removed
	// * err - the error message occurred
	RemoveBidErrorMetricName = "doppler_auction_usecase_remove_bid_error_total"

	// doppler_auction_usecase_settle_error_total
	//
	// counter that measures the number of errors that occur during settlement in auction usecase
	//
	// Has the following labels:
	// * err - the error message occurred
	SettleErrorMetricName = "doppler_auction_usecase_settle_error_total"

	// doppler_auction_usecase_claim_error_total
	//
	// counter that measures the number of errors that occur during incentive claims in auction usecase
	//
	// Has the following labels:
	// * position_id - the identifier of the position being claimed
	// * err - the error message occurred
	ClaimErrorMetricName = "doppler_auction_usecase_claim_error_total"

	// doppler_auction_usecase_bids_placed_total
	//
	// counter that measures the number of bids placed
	BidsPlacedMetricName = "doppler_auction_usecase_bids_placed_total"

	// doppler_auction_usecase_claims_paid_total
	//
	// counter that measures the number of incentive claims paid out
	ClaimsPaidMetricName = "doppler_auction_usecase_claims_paid_total"

	// doppler_auction_usecase_reestimate_total
	//
	// counter that measures the number of clearing estimate recomputations
	ReestimateMetricName = "doppler_auction_usecase_reestimate_total"

	PlaceBidErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: PlaceBidErrorMetricName,
			Help: "counter that measures the number of errors that occur during bid placement in auction usecase",
		},
	)

	RemoveBidErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: RemoveBidErrorMetricName,
			Help: "counter that measures the number of errors that occur during bid removal in auction usecase",
		},
	)

	SettleErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SettleErrorMetricName,
			Help: "counter that measures the number of errors that occur during settlement in auction usecase",
		},
	)

	ClaimErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: ClaimErrorMetricName,
			Help: "counter that measures the number of errors that occur during incentive claims in auction usecase",
		},
	)

	BidsPlacedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: BidsPlacedMetricName,
			Help: "counter that measures the number of bids placed",
		},
	)

	ClaimsPaidCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: ClaimsPaidMetricName,
			Help: "counter that measures the number of incentive claims paid out",
		},
	)

	ReestimateCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: ReestimateMetricName,
			Help: "counter that measures the number of clearing estimate recomputations",
		},
	)
)

func init() {
	prometheus.MustRegister(PlaceBidErrorCounter)
	prometheus.MustRegister(RemoveBidErrorCounter)
	prometheus.MustRegister(SettleErrorCounter)
	prometheus.MustRegister(ClaimErrorCounter)
	prometheus.MustRegister(BidsPlacedCounter)
	prometheus.MustRegister(ClaimsPaidCounter)
	prometheus.MustRegister(ReestimateCounter)
}
