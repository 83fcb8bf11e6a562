package restapi

import (
	"math"
	"time"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/pkg/utils"
)

func formatUnixSeconds(v uint64) string {
	if v > math.MaxInt64 {
		return utils.InvalidDate
	}
	return utils.FormatUnixDate(int64(v))
}

func toSnapshotDisplay(snap entity.InvestmentSnapshot, chains port.ChainDefinitionProvider) entity.SnapshotDisplay {
	d := entity.SnapshotDisplay{
		Chain:               snap.Chain,
		Balance:             utils.FormatScaled(snap.Balance),
		TotalDeposited:      utils.FormatScaled(snap.TotalDeposited),
		LocalAPY:            utils.FormatPercent(snap.LocalAPY),
		RemoteAPY:           utils.FormatPercent(snap.RemoteAPY),
		MigrationInProgress: snap.MigrationInProgress,
		Destination: entity.DestinationDisplay{
			ChainID: snap.Destination.ChainID,
			Address: snap.Destination.Address,
			APY:     utils.FormatPercent(snap.Destination.APY),
		},
		AssetAddress:    snap.AssetAddress,
		MigrationStatus: snap.MigrationStatusText,
		UserInvestment: entity.UserInvestmentDisplay{
			TotalDeposited:   utils.FormatScaled(snap.UserInvestment.TotalDeposited),
			TotalWithdrawn:   utils.FormatScaled(snap.UserInvestment.TotalWithdrawn),
			LastDepositDate:  formatUnixSeconds(snap.UserInvestment.LastDepositTime),
			LastWithdrawDate: formatUnixSeconds(snap.UserInvestment.LastWithdrawTime),
			LastYieldDate:    formatUnixSeconds(snap.UserInvestment.LastYieldTime),
		},
		Fallback: snap.Fallback,
	}
	if def, ok := chains.GetChainDefinition(snap.Chain); ok {
		d.ChainName = def.Name
	}
	if def, ok := chains.GetChainDefinitionByChainID(snap.Destination.ChainID); ok {
		d.Destination.ChainName = def.Name
	}
	if !snap.FetchedAt.IsZero() {
		d.FetchedAt = snap.FetchedAt.UTC().Format(time.RFC3339)
	}
	return d
}

func toStakingViewDisplay(st entity.StakingViewState, chains port.ChainDefinitionProvider) entity.StakingViewDisplay {
	d := entity.StakingViewDisplay{
		Wallet:    st.Wallet,
		Chain:     st.SelectedChain,
		State:     st.State,
		RequestID: st.RequestID,
	}
	if st.Snapshot != nil {
		snap := toSnapshotDisplay(*st.Snapshot, chains)
		d.Snapshot = &snap
	}
	return d
}

func toPortfolioDisplay(view entity.PortfolioView, chains port.ChainDefinitionProvider) entity.PortfolioDisplay {
	d := entity.PortfolioDisplay{
		Wallet:         view.Wallet,
		Chains:         make([]entity.SnapshotDisplay, 0, len(view.Snapshots)),
		TotalBalance:   utils.FormatScaled(view.TotalBalance),
		TotalWithdrawn: utils.FormatScaled(view.TotalWithdrawn),
	}
	for _, def := range chains.GetAllChainDefinitions() {
		if snap, ok := view.Snapshots[def.Key]; ok {
			d.Chains = append(d.Chains, toSnapshotDisplay(snap, chains))
		}
	}
	return d
}
