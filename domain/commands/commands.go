package commands

type Command interface {
	Name() string
}

type SelectAsset struct {
	Asset string `json:"asset"`
}

func (c SelectAsset) Name() string { return "SELECT_ASSET" }

type Deposit struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

func (c Deposit) Name() string { return "DEPOSIT" }

type Withdraw struct {
	Asset       string `json:"asset"`
	Amount      string `json:"amount"`
	Destination string `json:"destination"`
}

func (c Withdraw) Name() string { return "WITHDRAW" }

type SetBet struct {
	Amount string `json:"amount"`
}

func (c SetBet) Name() string { return "SET_BET" }

type HalveBet struct{}

func (c HalveBet) Name() string { return "HALVE_BET" }

type DoubleBet struct{}

func (c DoubleBet) Name() string { return "DOUBLE_BET" }

type Deal struct{}

func (c Deal) Name() string { return "DEAL" }

type Hit struct{}

func (c Hit) Name() string { return "HIT" }

type Stand struct{}

func (c Stand) Name() string { return "STAND" }

type Double struct{}

func (c Double) Name() string { return "DOUBLE" }

type PlayAgain struct{}

func (c PlayAgain) Name() string { return "PLAY_AGAIN" }

type GetState struct{}

func (c GetState) Name() string { return "GET_STATE" }
