package hanconv

// simplifiedToTraditional lists simplified and traditional runes in pairs.
// Characters with more than one traditional form map to their most common
// form; simplifiedPhrases covers the words that need the other one.
const simplifiedToTraditional = "烟煙乌烏蓝藍绿綠黄黃红紅后後爱愛妈媽鱼魚鸟鳥气氣云雲阴陰阳陽蔷薔发發线線笔筆妆妝饼餅垫墊盘盤扑撲润潤显顯浅淺闪閃泽澤湿濕" +
	"镜鏡细細体體饰飾卧臥丝絲护護团團双雙头頭腻膩韩韓饱飽颜顏欧歐杂雜伪偽晕暈软軟质質独獨兽獸优優顺順干乾宝寶芦蘆绒絨诺諾纪紀" +
	"维維雾霧带帶携攜纸紙轻輕贴貼纯純开開调調补補肤膚绵綿胶膠单單长長专專纹紋无無哑啞飞飛猫貓灵靈懒懶宽寬货貨现現湾灣礼禮条條" +
	"张張组組层層装裝号號码碼买買卖賣赠贈费費价價进進国國际際产產厂廠门門问問题題丽麗园園图圖书書时時间間个個们們这這样樣会會" +
	"说說对對还還过過让讓给給见見应應该該么麼为為种種边邊点點级級极極变變动動东東车車马馬风風龙龍凤鳳机機电電视視话話语語读讀" +
	"写寫学學习習节節观觀欢歡乐樂儿兒亲親脸臉银銀钻鑽莹瑩荧熒蜡蠟喷噴净淨洁潔紧緊致緻滤濾盖蓋块塊帘簾试試验驗签簽类類约約减減" +
	"压壓热熱温溫凉涼锁鎖浓濃彻徹遗遺严嚴丰豐满滿资資贵貴钱錢铁鐵钢鋼针針链鏈钟鐘锦錦缎緞纱紗织織绣繡缤繽纷紛艳豔妩嫵娇嬌婴嬰" +
	"孙孫觉覺缘緣梦夢恋戀忆憶惊驚闺閨凯凱泪淚涩澀滨濱汤湯沟溝烫燙烛燭灿燦烂爛炉爐灯燈脱脫肿腫胆膽脑腦腊臘药藥荣榮莲蓮萝蘿蕴蘊" +
	"苏蘇叶葉兰蘭构構树樹桥橋栏欄樱櫻档檔检檢杨楊枫楓岁歲历歷广廣库庫庆慶废廢弹彈归歸录錄忧憂怀懷态態总總恶惡悬懸惯慣扫掃抛拋" +
	"挂掛拥擁择擇换換据據摄攝敌敵数數斗鬥断斷旧舊晒曬晓曉术術杀殺权權来來标標桩樁毕畢汇匯汉漢沪滬泼潑洒灑浆漿测測济濟浏瀏涂塗" +
	"渐漸渔漁溃潰滚滾滞滯滥濫潜潛灭滅炼煉烧燒烦煩爷爺牵牽犹猶狮獅献獻环環玛瑪琼瓊画畫畅暢疗療疯瘋痒癢瘾癮盐鹽监監盗盜众眾睁睜" +
	"矫矯砖磚础礎确確祸禍离離称稱积積稳穩穷窮窃竊竞競笋筍筑築简簡粮糧纠糾纳納纵縱纽紐练練终終经經绑綁结結绕繞绘繪络絡统統继繼" +
	"绩績续續综綜缓緩编編缩縮网網罗羅罚罰罢罷职職联聯聪聰肃肅肠腸肾腎胀脹胁脅胜勝脏髒腾騰舰艦舱艙艺藝芸蕓苍蒼范範茎莖荐薦获獲" +
	"营營萧蕭蓦驀虏虜虑慮虚虛虫蟲虽雖蚀蝕蚁蟻蚕蠶蛮蠻袄襖规規览覽誉譽计計订訂认認讨討训訓议議记記讲講许許论論设設访訪证證评評" +
	"识識诉訴词詞译譯诗詩诚誠询詢详詳误誤请請诸諸课課谁誰谈談谢謝谷穀贝貝负負贡貢财財责責败敗贩販购購贯貫贷貸贸貿贺賀赏賞赖賴" +
	"赚賺赛賽赞讚赶趕趋趨跃躍践踐踪蹤轮輪轰轟载載较較辆輛辈輩辉輝输輸辞辭达達迁遷运運远遠违違连連迟遲适適选選递遞逻邏邮郵邻鄰" +
	"郑鄭酱醬释釋钓釣钙鈣钥鑰钩鉤铃鈴铅鉛铜銅铺鋪销銷锅鍋锋鋒错錯锻鍛镇鎮闭閉闲閒闷悶闹鬧闻聞阅閱队隊阶階陆陸陈陳险險随隨隐隱" +
	"难難雏雛鸡雞静靜页頁顶頂项項须須顽頑顾顧顿頓预預领領频頻颗顆额額飘飄饭飯饮飲馆館驱驅骑騎骗騙鲜鮮鸭鴨麦麥齐齊齿齒"

// simplifiedPhrases overrides the rune table for whole words. Lookups prefer
// the longest phrase starting at each position.
var simplifiedPhrases = map[string]string{
	// 发 is 發 unless it means hair.
	"头发": "頭髮", "发色": "髮色", "发型": "髮型", "发丝": "髮絲", "发质": "髮質",
	"发根": "髮根", "发尾": "髮尾", "发梢": "髮梢", "发际": "髮際", "发胶": "髮膠",
	"发蜡": "髮蠟", "发膜": "髮膜", "发泥": "髮泥", "发油": "髮油", "发饰": "髮飾",
	"发夹": "髮夾", "发箍": "髮箍", "发圈": "髮圈", "发带": "髮帶", "发卡": "髮卡",
	"发簪": "髮簪", "发量": "髮量", "护发": "護髮", "洗发": "洗髮", "美发": "美髮",
	"染发": "染髮", "烫发": "燙髮", "假发": "假髮", "卷发": "捲髮", "直发": "直髮",
	"秀发": "秀髮", "长发": "長髮", "短发": "短髮", "白发": "白髮", "黑发": "黑髮",
	"脱发": "脫髮", "生发": "生髮", "毛发": "毛髮", "理发": "理髮", "干发": "乾髮",

	// 后 is 後 except in titles.
	"皇后": "皇后", "王后": "王后", "太后": "太后", "后妃": "后妃",

	// 干 is 乾 except in these words.
	"干扰": "干擾", "干涉": "干涉", "干预": "干預", "若干": "若干", "相干": "相干",

	"北斗": "北斗", "斗篷": "斗篷",
	"山谷": "山谷", "峡谷": "峽谷",
	"钟情": "鍾情",
	"日历": "日曆", "历书": "曆書",
}
