// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import "github.com/vechain/purevm/word"

// transientStorage is the word-keyed word map behind TLOAD/TSTORE.
// It lives and dies with a single execution.
type transientStorage map[word.Word]word.Word

// load returns the stored word, or the zero word when absent.
func (t transientStorage) load(key word.Word) word.Word {
	return t[key]
}

func (t transientStorage) store(key, value word.Word) {
	t[key] = value
}
