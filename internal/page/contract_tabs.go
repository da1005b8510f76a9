package page

import "github.com/rshade/tokenscope/internal/token"

// Contract sub-tabs.
const (
	SubTabCode       TabID = "contract_code"
	SubTabRead       TabID = "read_contract"
	SubTabReadProxy  TabID = "read_proxy"
	SubTabWrite      TabID = "write_contract"
	SubTabWriteProxy TabID = "write_proxy"
)

// ContractTab is one sub-tab of the contract tab.
type ContractTab struct {
	ID    TabID  `json:"id"`
	Title string `json:"title"`
}

// ContractSubTabs derives the contract sub-tabs from the address info. Code
// is always present; read and write tabs appear when the contract exposes
// such methods, directly or through a proxy.
func ContractSubTabs(info token.AddressInfo) []ContractTab {
	tabs := []ContractTab{{ID: SubTabCode, Title: "Code"}}
	if info.HasMethodsRead {
		tabs = append(tabs, ContractTab{ID: SubTabRead, Title: "Read contract"})
	}
	if info.HasMethodsReadProxy {
		tabs = append(tabs, ContractTab{ID: SubTabReadProxy, Title: "Read proxy"})
	}
	if info.HasMethodsWrite {
		tabs = append(tabs, ContractTab{ID: SubTabWrite, Title: "Write contract"})
	}
	if info.HasMethodsWriteProxy {
		tabs = append(tabs, ContractTab{ID: SubTabWriteProxy, Title: "Write proxy"})
	}
	return tabs
}

// isContractSubTab reports whether id names any known contract sub-tab.
func isContractSubTab(id TabID) bool {
	switch id {
	case SubTabCode, SubTabRead, SubTabReadProxy, SubTabWrite, SubTabWriteProxy:
		return true
	}
	return false
}
